package port

import (
	"context"

	"tably/internal/service/order/domain"
)

// Catalog 是菜单目录的出站端口。订单核心只读菜单，
// 菜单自身的增删改由外部模块负责。
type Catalog interface {
	// FindProduct 查找商品，不存在时返回 domain.ErrProductNotFound。
	FindProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ResolveModifiers 解析选中的调味项并返回其下单时点的加价快照。
	// 任一选项不存在或不属于该商品时返回 domain.ErrModifierNotFound。
	ResolveModifiers(ctx context.Context, productID string, optionIDs []string) ([]domain.ModifierSelection, error)
}

// PopularityCounter 维护商品的热度计数，用于畅销榜。
type PopularityCounter interface {
	// Increment 为商品累加热度（按下单份数）。
	Increment(ctx context.Context, productID string, delta int) error
}
