// internal/service/order/application/cascade/popularity.go
package cascade

import (
	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
)

// PopularityStep 按下单份数累加每个商品的热度计数。
type PopularityStep struct {
	NextStep
}

func (s *PopularityStep) Handle(c *Context) {
	ctx, span := c.Tracer.Start(c.Ctx, "cascade.Popularity")
	defer span.End()

	for _, item := range c.Order.Items {
		if err := c.Popularity.Increment(ctx, item.ProductID, item.Quantity); err != nil {
			span.RecordError(err)
			metrics.SideEffectFailures.WithLabelValues("popularity").Inc()
			logger.Ctx(ctx).Error().Err(err).
				Str("order", c.Order.ID).Str("product", item.ProductID).
				Msg("failed to increment popularity counter")
		}
	}

	s.executeNext(c)
}
