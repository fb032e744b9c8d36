// internal/service/order/application/cascade/inventory.go
package cascade

import (
	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
)

// InventoryDebitStep 逐行扣减库存。单行失败不影响其他行，
// 也不影响订单的 COMPLETED 状态。
type InventoryDebitStep struct {
	NextStep
}

func (s *InventoryDebitStep) Handle(c *Context) {
	ctx, span := c.Tracer.Start(c.Ctx, "cascade.InventoryDebit")
	defer span.End()

	for _, item := range c.Order.Items {
		if err := c.Stock.Debit(ctx, item.ProductID, item.Quantity, c.Order.ID); err != nil {
			span.RecordError(err)
			metrics.SideEffectFailures.WithLabelValues("inventory_debit").Inc()
			logger.Ctx(ctx).Error().Err(err).
				Str("order", c.Order.ID).Str("product", item.ProductID).
				Msg("failed to debit inventory")
		}
	}

	s.executeNext(c)
}
