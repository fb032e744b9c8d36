// internal/service/order/infrastructure/adapter/notifier_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
	"tably/internal/pkg/mq"
	"tably/internal/service/order/domain"
)

// NotifierKafkaAdapter 把实时事件投递到消息队列，由实时网关消费后
// 推送到对应房间。投递是 fire-and-forget: 推送失败只记日志，
// 绝不影响已经提交的订单变更。
type NotifierKafkaAdapter struct {
	writer *kafka.Writer
}

func NewNotifierKafkaAdapter(writer *kafka.Writer) *NotifierKafkaAdapter {
	return &NotifierKafkaAdapter{writer: writer}
}

// Publish 发送一条房间事件。以房间名为分区键，同一房间的事件保序。
func (a *NotifierKafkaAdapter) Publish(ctx context.Context, room, event string, payload interface{}) {
	envelope := domain.RealtimeEvent{Room: room, Event: event, Payload: payload}
	value, err := json.Marshal(envelope)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).
			Str("room", room).
			Str("event", event).
			Msg("failed to marshal realtime event")
		return
	}

	if err := mq.ProduceMessage(ctx, a.writer, []byte(room), value); err != nil {
		logger.Ctx(ctx).Error().Err(err).
			Str("room", room).
			Str("event", event).
			Msg("failed to publish realtime event")
		return
	}
	metrics.RealtimeEvents.WithLabelValues(event).Inc()
}
