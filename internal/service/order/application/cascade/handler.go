// internal/service/order/application/cascade/handler.go
package cascade

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"tably/internal/service/order/domain"
	"tably/internal/service/order/domain/port"
)

// Context 在完成级联的各个步骤之间传递数据和依赖。
// 级联在订单进入 COMPLETED 之后恰好触发一次，所有步骤都是尽力而为:
// 单个步骤失败只记录日志和指标，既不回滚订单状态，也不阻止后续步骤。
type Context struct {
	Ctx    context.Context
	Order  *domain.Order
	Tracer trace.Tracer

	Tables     port.TableRegistry
	Popularity port.PopularityCounter
	Loyalty    port.PointsLedger
	Stock      port.StockLedger
}

// Step 是级联中的一个环节。与补偿型 Saga 不同，
// Handle 不返回错误: 每一环自己消化失败并继续走完整条链。
type Step interface {
	SetNext(step Step) Step
	Handle(c *Context)
}

// NextStep 提供链式调用的公共骨架。
type NextStep struct {
	next Step
}

func (s *NextStep) SetNext(step Step) Step {
	s.next = step
	return step
}

func (s *NextStep) executeNext(c *Context) {
	if s.next != nil {
		s.next.Handle(c)
	}
}

// Build 组装完成级联: 释放桌台 -> 热度计数 -> 积分返还 -> 库存扣减。
func Build() Step {
	chain := new(ReleaseTableStep)
	chain.
		SetNext(new(PopularityStep)).
		SetNext(new(LoyaltyCreditStep)).
		SetNext(new(InventoryDebitStep))
	return chain
}
