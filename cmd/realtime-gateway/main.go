// cmd/realtime-gateway/main.go
package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tably/internal/pkg/bootstrap"
	"tably/internal/pkg/logger"
	"tably/internal/pkg/mq"
	"tably/internal/service/gateway"
)

const serviceName = "realtime-gateway"

func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	hub := gateway.NewHub()
	go hub.Run()

	reader := mq.NewKafkaReader(
		cfg.Infra.Kafka.Brokers,
		cfg.Infra.Kafka.RealtimeTopic,
		cfg.Infra.Kafka.ConsumerGroup,
	)
	consumer := gateway.NewConsumer(reader, hub)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Run(consumerCtx); err != nil && err != context.Canceled {
			logger.L().Fatal().Err(err).Msg("realtime consumer exited")
		}
	}()

	port := cfg.App.Port
	if port == 0 {
		port = 8088
	}

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			appCtx.Mux.Handle("/metrics", promhttp.Handler())
			appCtx.Mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
				gateway.ServeWs(hub, w, r)
			})
		},
		OnShutdown: func(ctx context.Context) {
			stopConsumer()
			if err := reader.Close(); err != nil {
				logger.L().Error().Err(err).Msg("kafka reader close failed")
			}
		},
	})
}
