// internal/service/order/application/cascade/loyalty.go
package cascade

import (
	"go.opentelemetry.io/otel/attribute"

	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
	"tably/internal/service/order/domain"
)

// LoyaltyCreditStep 给挂了顾客的已完成订单返还积分:
// 按应付金额每满 10000 返 1 分，记一条 EARN 流水并重算会员等级。
type LoyaltyCreditStep struct {
	NextStep
}

func (s *LoyaltyCreditStep) Handle(c *Context) {
	ctx, span := c.Tracer.Start(c.Ctx, "cascade.LoyaltyCredit")
	defer span.End()

	if c.Order.CustomerID == "" {
		s.executeNext(c)
		return
	}

	points := domain.EarnedPoints(c.Order.Payable())
	span.SetAttributes(
		attribute.String("customer.id", c.Order.CustomerID),
		attribute.Int64("points.earned", points),
	)
	if points > 0 {
		if err := c.Loyalty.Credit(ctx, c.Order.CustomerID, points, c.Order.ID); err != nil {
			span.RecordError(err)
			metrics.SideEffectFailures.WithLabelValues("loyalty_credit").Inc()
			logger.Ctx(ctx).Error().Err(err).
				Str("order", c.Order.ID).Str("customer", c.Order.CustomerID).
				Msg("failed to credit loyalty points")
		}
	}

	s.executeNext(c)
}
