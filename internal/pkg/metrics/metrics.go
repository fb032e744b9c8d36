// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 订单核心的业务指标，经由 /metrics 暴露给 Prometheus。
var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tably_orders_created_total",
		Help: "Orders created (including merges into an open order).",
	})

	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tably_orders_completed_total",
		Help: "Orders transitioned into COMPLETED.",
	})

	RealtimeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tably_realtime_events_total",
		Help: "Realtime events published, by event name.",
	}, []string{"event"})

	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tably_side_effect_failures_total",
		Help: "Best-effort completion side effects that failed, by step.",
	}, []string{"step"})
)
