// internal/service/order/infrastructure/adapter/table_gorm_adapter.go
package adapter

import (
	"context"
	"errors"

	perrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"tably/internal/service/order/domain"
	"tably/internal/service/order/infrastructure"
)

// TableGormAdapter 是 port.TableRegistry 的 GORM 实现。
type TableGormAdapter struct {
	db *gorm.DB
}

func NewTableGormAdapter(db *gorm.DB) *TableGormAdapter {
	return &TableGormAdapter{db: db}
}

// Status 读取桌台占用状态。
func (a *TableGormAdapter) Status(ctx context.Context, tableID string) (domain.TableStatus, error) {
	var model infrastructure.TableModel
	err := infrastructure.DBFrom(ctx, a.db).Where("id = ?", tableID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrTableNotFound
		}
		return "", perrors.Wrap(err, "failed to load table")
	}
	return domain.TableStatus(model.Status), nil
}

// SetStatus 更新桌台占用状态。
func (a *TableGormAdapter) SetStatus(ctx context.Context, tableID string, status domain.TableStatus) error {
	result := infrastructure.DBFrom(ctx, a.db).
		Model(&infrastructure.TableModel{}).
		Where("id = ?", tableID).
		Update("status", string(status))
	if result.Error != nil {
		return perrors.Wrap(result.Error, "failed to update table status")
	}
	if result.RowsAffected == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}
