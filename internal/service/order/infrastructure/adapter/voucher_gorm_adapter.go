// internal/service/order/infrastructure/adapter/voucher_gorm_adapter.go
package adapter

import (
	"context"
	"errors"

	perrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"tably/internal/service/order/domain"
	"tably/internal/service/order/infrastructure"
)

// VoucherGormAdapter 是 port.VoucherStore 的 GORM 实现。
type VoucherGormAdapter struct {
	db *gorm.DB
}

func NewVoucherGormAdapter(db *gorm.DB) *VoucherGormAdapter {
	return &VoucherGormAdapter{db: db}
}

// FindByCode 按券码查找代金券。
func (a *VoucherGormAdapter) FindByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	var model infrastructure.VoucherModel
	err := infrastructure.DBFrom(ctx, a.db).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, perrors.Wrap(err, "failed to load voucher")
	}
	return infrastructure.ToDomainVoucher(&model), nil
}

// IncrementUsage 原子地累加使用计数。调用方保证它运行在
// 订单写入所在的同一事务里，事务回滚时计数一起回滚。
func (a *VoucherGormAdapter) IncrementUsage(ctx context.Context, voucherID string) error {
	result := infrastructure.DBFrom(ctx, a.db).
		Model(&infrastructure.VoucherModel{}).
		Where("id = ?", voucherID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return perrors.Wrap(result.Error, "failed to increment voucher usage")
	}
	if result.RowsAffected == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}
