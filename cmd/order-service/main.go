// cmd/order-service/main.go
package main

import (
	"context"

	"go.opentelemetry.io/otel"

	"tably/internal/pkg/bootstrap"
	"tably/internal/pkg/logger"
	"tably/internal/pkg/mq"
	"tably/internal/pkg/redis"
	"tably/internal/service/order/application"
	"tably/internal/service/order/infrastructure"
	"tably/internal/service/order/infrastructure/adapter"
	"tably/internal/service/order/infrastructure/rule"
	"tably/internal/service/order/interfaces"
	"tably/internal/zookeeper"
)

const serviceName = "order-service"

// main 函数是应用的"组装根" (Composition Root)
// 它的核心职责是：创建并组装所有依赖项，然后启动应用。
func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	db, err := infrastructure.OpenMySQL(infrastructure.MySQLConfig{
		Host:     cfg.Infra.MySQL.Host,
		Port:     cfg.Infra.MySQL.Port,
		User:     cfg.Infra.MySQL.User,
		Password: cfg.Infra.MySQL.Password,
		Database: cfg.Infra.MySQL.Database,
	})
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to open mysql")
	}

	redisClient, err := redis.NewClient(cfg.Infra.Redis.Addr)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to initialize redis client")
	}

	zkConn, err := zookeeper.Connect(cfg.Infra.Zookeeper.Servers)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to connect zookeeper")
	}

	kafkaWriter := mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.RealtimeTopic)

	ruleEngine, err := rule.NewCelRuleEngine()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to initialize rule engine")
	}

	service := application.NewOrderService(
		infrastructure.NewGormOrderRepository(db),
		infrastructure.NewGormTxManager(db),
		adapter.NewTableLockZkAdapter(zkConn),
		otel.Tracer(serviceName),
		adapter.NewCatalogGormAdapter(db),
		adapter.NewTableGormAdapter(db),
		adapter.NewVoucherGormAdapter(db),
		ruleEngine,
		adapter.NewLoyaltyGormAdapter(db),
		adapter.NewInventoryGormAdapter(db),
		adapter.NewPopularityRedisAdapter(redisClient),
		adapter.NewNotifierKafkaAdapter(kafkaWriter),
	)
	handler := interfaces.NewOrderHandler(service)

	port := cfg.App.Port
	if port == 0 {
		port = 8080
	}

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			handler.RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if err := kafkaWriter.Close(); err != nil {
				logger.L().Error().Err(err).Msg("kafka writer close failed")
			}
			if err := redisClient.Close(); err != nil {
				logger.L().Error().Err(err).Msg("redis close failed")
			}
			zkConn.Close()
		},
	})
}
