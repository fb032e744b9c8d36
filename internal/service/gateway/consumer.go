// internal/service/gateway/consumer.go
package gateway

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"tably/internal/pkg/logger"
	"tably/internal/pkg/metrics"
	"tably/internal/pkg/mq"
	"tably/internal/service/order/domain"
)

// Consumer 从消息队列拉取实时事件并交给 Hub 广播。
type Consumer struct {
	reader *kafka.Reader
	hub    *Hub
}

func NewConsumer(reader *kafka.Reader, hub *Hub) *Consumer {
	return &Consumer{reader: reader, hub: hub}
}

// Run 阻塞消费直到 ctx 取消。解不开的消息记日志后丢弃，
// 一条坏消息不能卡住整个房间的推送。
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.L().Error().Err(err).Msg("failed to read realtime event")
			continue
		}

		carrier := mq.KafkaHeaderCarrier(msg.Headers)
		msgCtx := otel.GetTextMapPropagator().Extract(ctx, &carrier)

		var envelope domain.RealtimeEvent
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			logger.Ctx(msgCtx).Error().Err(err).Msg("failed to decode realtime event, dropping")
			continue
		}

		tracer := otel.Tracer("realtime-gateway")
		_, span := tracer.Start(msgCtx, "gateway.Broadcast")
		c.hub.Broadcast(envelope.Room, msg.Value)
		span.End()

		metrics.RealtimeEvents.WithLabelValues(envelope.Event).Inc()
		logger.Ctx(msgCtx).Debug().
			Str("room", envelope.Room).
			Str("event", envelope.Event).
			Msg("realtime event broadcast")
	}
}
