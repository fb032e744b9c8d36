package port

import "context"

// EventPublisher 是实时推送的出站端口。
// 所有推送都是 fire-and-forget: 实现内部吞掉并记录失败，
// 永远不把错误抛回给执行变更的调用方。
type EventPublisher interface {
	Publish(ctx context.Context, room, event string, payload interface{})
}
