// internal/service/order/domain/repository.go
package domain

import "context"

// OrderRepository 定义了订单聚合的持久化接口。
// 它位于领域层，由基础设施层实现。所有方法都感知上下文中携带的事务。
type OrderRepository interface {
	// Save 保存一个订单聚合（创建或整体更新，包含菜品行）。
	Save(ctx context.Context, order *Order) error

	// FindByID 根据 ID 查找订单，不存在时返回 ErrOrderNotFound。
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByItemID 根据菜品行 ID 反查其所属订单。
	FindByItemID(ctx context.Context, itemID string) (*Order, error)

	// FindOpenByTable 查找某张桌子当前的 open 订单（非终态），
	// 没有时返回 (nil, nil)。
	FindOpenByTable(ctx context.Context, tableID string) (*Order, error)

	// List 列出订单，tableID 为空串时列出全部。
	List(ctx context.Context, tableID string) ([]*Order, error)
}
