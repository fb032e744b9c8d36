package port

import "context"

// TxManager 把一次调用范围内的所有存储操作包进同一个原子事务。
// 实现方将事务句柄塞进 context，各个仓储/适配器从 context 取出使用；
// fn 返回错误时整个事务回滚。
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
