package port

import (
	"context"

	"tably/internal/service/order/domain"
)

// TableRegistry 是桌台登记表的出站端口。
type TableRegistry interface {
	// Status 读取桌台当前的占用状态，桌台不存在时返回 domain.ErrTableNotFound。
	Status(ctx context.Context, tableID string) (domain.TableStatus, error)

	// SetStatus 更新桌台占用状态。
	SetStatus(ctx context.Context, tableID string, status domain.TableStatus) error
}

// TableLocker 对同一张桌子的订单提交做单写者串行化，
// 消除 "查 open 订单再创建" 的竞态窗口。
type TableLocker interface {
	// Acquire 获取桌台锁，返回释放函数。获取失败时返回错误。
	Acquire(ctx context.Context, tableID string) (release func(), err error)
}
