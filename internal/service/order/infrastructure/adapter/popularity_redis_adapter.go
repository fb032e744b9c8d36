// internal/service/order/infrastructure/adapter/popularity_redis_adapter.go
package adapter

import (
	"context"

	perrors "github.com/pkg/errors"

	"tably/internal/pkg/redis"
)

const popularityKey = "popularity:products"

// PopularityRedisAdapter 用 Redis 有序集合维护商品热度榜，
// 成员是商品 ID，分数是累计下单份数。
type PopularityRedisAdapter struct {
	client *redis.Client
}

func NewPopularityRedisAdapter(client *redis.Client) *PopularityRedisAdapter {
	return &PopularityRedisAdapter{client: client}
}

// Increment 为商品累加热度。
func (a *PopularityRedisAdapter) Increment(ctx context.Context, productID string, delta int) error {
	err := a.client.GetClient().ZIncrBy(ctx, popularityKey, float64(delta), productID).Err()
	if err != nil {
		return perrors.Wrap(err, "failed to increment product popularity")
	}
	return nil
}
