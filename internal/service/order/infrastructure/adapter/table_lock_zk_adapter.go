// internal/service/order/infrastructure/adapter/table_lock_zk_adapter.go
package adapter

import (
	"context"

	perrors "github.com/pkg/errors"

	"tably/internal/pkg/logger"
	"tably/internal/zookeeper"
)

// TableLockZkAdapter 用 Zookeeper 分布式锁实现 port.TableLocker。
// 多实例部署时对同一张桌子的提交全局串行。
type TableLockZkAdapter struct {
	conn *zookeeper.Conn
}

func NewTableLockZkAdapter(conn *zookeeper.Conn) *TableLockZkAdapter {
	return &TableLockZkAdapter{conn: conn}
}

// Acquire 获取桌台锁并返回释放函数。
func (a *TableLockZkAdapter) Acquire(ctx context.Context, tableID string) (func(), error) {
	lock, err := zookeeper.NewDistributedLock(a.conn, "table-"+tableID)
	if err != nil {
		return nil, perrors.Wrap(err, "failed to init table lock")
	}
	if err := lock.Lock(); err != nil {
		return nil, perrors.Wrap(err, "failed to acquire table lock")
	}
	release := func() {
		if err := lock.Unlock(); err != nil {
			logger.Ctx(ctx).Error().Err(err).
				Str("table_id", tableID).
				Msg("failed to release table lock")
		}
	}
	return release, nil
}
