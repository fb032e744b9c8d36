// internal/service/order/infrastructure/adapter/loyalty_gorm_adapter.go
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	perrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tably/internal/service/order/domain"
	"tably/internal/service/order/infrastructure"
)

// LoyaltyGormAdapter 是 port.PointsLedger 的 GORM 实现。
// 余额变动与流水插入总是在同一个数据库事务内完成。
type LoyaltyGormAdapter struct {
	db *gorm.DB
}

func NewLoyaltyGormAdapter(db *gorm.DB) *LoyaltyGormAdapter {
	return &LoyaltyGormAdapter{db: db}
}

// Account 读取顾客积分账户。
func (a *LoyaltyGormAdapter) Account(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error) {
	var model infrastructure.LoyaltyAccountModel
	err := infrastructure.DBFrom(ctx, a.db).Where("customer_id = ?", customerID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoLoyaltyAccount
		}
		return nil, perrors.Wrap(err, "failed to load loyalty account")
	}
	return infrastructure.ToDomainAccount(&model), nil
}

// Debit 扣减积分并追加 REDEEM 流水。
// 用条件更新兜底余额检查，并发扣减不会把余额扣成负数。
func (a *LoyaltyGormAdapter) Debit(ctx context.Context, customerID string, points int64, orderID string) error {
	return infrastructure.DBFrom(ctx, a.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&infrastructure.LoyaltyAccountModel{}).
			Where("customer_id = ? AND balance >= ?", customerID, points).
			Updates(map[string]interface{}{
				"balance":           gorm.Expr("balance - ?", points),
				"lifetime_redeemed": gorm.Expr("lifetime_redeemed + ?", points),
				"updated_at":        time.Now(),
			})
		if result.Error != nil {
			return perrors.Wrap(result.Error, "failed to debit loyalty account")
		}
		if result.RowsAffected == 0 {
			return domain.ErrInsufficientPoints
		}
		return tx.Create(&infrastructure.LoyaltyTransactionModel{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			OrderID:    orderID,
			Kind:       string(domain.LoyaltyRedeem),
			Points:     -points,
			CreatedAt:  time.Now(),
		}).Error
	})
}

// Credit 累加积分、追加 EARN 流水，并按新的累计获得积分重算会员等级。
func (a *LoyaltyGormAdapter) Credit(ctx context.Context, customerID string, points int64, orderID string) error {
	return infrastructure.DBFrom(ctx, a.db).Transaction(func(tx *gorm.DB) error {
		var model infrastructure.LoyaltyAccountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ?", customerID).
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoLoyaltyAccount
			}
			return perrors.Wrap(err, "failed to load loyalty account")
		}

		model.Balance += points
		model.LifetimeEarned += points
		model.Tier = string(domain.TierFor(model.LifetimeEarned))
		model.UpdatedAt = time.Now()
		if err := tx.Save(&model).Error; err != nil {
			return perrors.Wrap(err, "failed to credit loyalty account")
		}

		return tx.Create(&infrastructure.LoyaltyTransactionModel{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			OrderID:    orderID,
			Kind:       string(domain.LoyaltyEarn),
			Points:     points,
			CreatedAt:  time.Now(),
		}).Error
	})
}
