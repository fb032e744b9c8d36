// internal/service/order/application/cascade/table.go
package cascade

import (
	"go.opentelemetry.io/otel/attribute"

	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
	"tably/internal/service/order/domain"
)

// ReleaseTableStep 在订单完成后把桌台放回 AVAILABLE。
type ReleaseTableStep struct {
	NextStep
}

func (s *ReleaseTableStep) Handle(c *Context) {
	ctx, span := c.Tracer.Start(c.Ctx, "cascade.ReleaseTable")
	defer span.End()
	span.SetAttributes(attribute.String("table.id", c.Order.TableID))

	if err := c.Tables.SetStatus(ctx, c.Order.TableID, domain.TableAvailable); err != nil {
		span.RecordError(err)
		metrics.SideEffectFailures.WithLabelValues("release_table").Inc()
		logger.Ctx(ctx).Error().Err(err).
			Str("order", c.Order.ID).Str("table", c.Order.TableID).
			Msg("failed to release table after completion")
	}

	s.executeNext(c)
}
