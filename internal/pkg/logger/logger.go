// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

var base zerolog.Logger

func init() {
	// 在 Init 被调用之前也能安全使用
	base = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init 初始化全局日志器，附带服务名字段。
func Init(serviceName string) {
	base = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// L 返回全局日志器。
func L() *zerolog.Logger {
	return &base
}

// Ctx 返回一个绑定了当前链路 trace_id 的日志器，
// 便于把日志与 Jaeger 中的调用链关联起来。
func Ctx(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return &base
	}
	l := base.With().Str("trace_id", sc.TraceID().String()).Logger()
	return &l
}
