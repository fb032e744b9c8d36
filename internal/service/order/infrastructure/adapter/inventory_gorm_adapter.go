// internal/service/order/infrastructure/adapter/inventory_gorm_adapter.go
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	perrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tably/internal/service/order/infrastructure"
)

// InventoryGormAdapter 是 port.StockLedger 的 GORM 实现。
// 每次扣减都会写一条带前后数量快照的流水，流水只追加不修改。
type InventoryGormAdapter struct {
	db *gorm.DB
}

func NewInventoryGormAdapter(db *gorm.DB) *InventoryGormAdapter {
	return &InventoryGormAdapter{db: db}
}

// Debit 扣减某商品库存。没有库存记录的商品视为不跟踪库存，直接跳过。
// 库存允许被扣成负数: 这里是事后记账而不是售前预占，负数留给盘点修正。
func (a *InventoryGormAdapter) Debit(ctx context.Context, productID string, quantity int, orderID string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record infrastructure.InventoryModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", productID).
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // 不跟踪库存
			}
			return perrors.Wrap(err, "failed to load inventory record")
		}

		before := record.Quantity
		record.Quantity -= int64(quantity)
		record.UpdatedAt = time.Now()
		if err := tx.Save(&record).Error; err != nil {
			return perrors.Wrap(err, "failed to update inventory quantity")
		}

		return tx.Create(&infrastructure.InventoryTransactionModel{
			ID:        uuid.New().String(),
			ProductID: productID,
			OrderID:   orderID,
			Delta:     -int64(quantity),
			BeforeQty: before,
			AfterQty:  record.Quantity,
			CreatedAt: time.Now(),
		}).Error
	})
}
