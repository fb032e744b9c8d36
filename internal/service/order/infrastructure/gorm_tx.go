// internal/service/order/infrastructure/gorm_tx.go
package infrastructure

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

// GormTxManager 实现 port.TxManager: 把 GORM 事务句柄放进 context，
// 同一调用范围内的所有仓储/适配器共享同一个事务。
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager 创建事务管理器。
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx 在单个数据库事务内执行 fn，fn 返回错误时整体回滚。
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}

// DBFrom 返回 context 中携带的事务句柄，没有事务时退回普通连接。
func DBFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
