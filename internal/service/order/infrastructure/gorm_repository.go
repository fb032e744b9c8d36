// internal/service/order/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"errors"

	perrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tably/internal/service/order/domain"
)

// GormOrderRepository 是 domain.OrderRepository 的 GORM 实现。
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository 创建一个新的订单仓储实例。
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save 整体保存订单及其菜品行（按主键 upsert）。
func (r *GormOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	db := DBFrom(ctx, r.db)
	model := FromDomainOrder(order)

	items := model.Items
	model.Items = nil
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error; err != nil {
		return perrors.Wrap(err, "failed to save order")
	}
	if len(items) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&items).Error; err != nil {
			return perrors.Wrap(err, "failed to save order items")
		}
	}
	return nil
}

// FindByID 加载订单及其全部菜品行。
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	db := DBFrom(ctx, r.db)
	var model OrderModel
	err := db.Preload("Items").Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, perrors.Wrap(err, "failed to load order")
	}
	return ToDomainOrder(&model), nil
}

// FindByItemID 根据菜品行反查其所属订单。
func (r *GormOrderRepository) FindByItemID(ctx context.Context, itemID string) (*domain.Order, error) {
	db := DBFrom(ctx, r.db)
	var item OrderItemModel
	err := db.Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, perrors.Wrap(err, "failed to load order item")
	}
	return r.FindByID(ctx, item.OrderID)
}

// FindOpenByTable 查找某张桌子的非终态订单，没有时返回 (nil, nil)。
func (r *GormOrderRepository) FindOpenByTable(ctx context.Context, tableID string) (*domain.Order, error) {
	db := DBFrom(ctx, r.db)
	var model OrderModel
	err := db.Preload("Items").
		Where("table_id = ? AND status NOT IN ?", tableID, terminalStatuses()).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, perrors.Wrap(err, "failed to look up open order")
	}
	return ToDomainOrder(&model), nil
}

// List 列出订单，tableID 为空串时列出全部，新单在前。
func (r *GormOrderRepository) List(ctx context.Context, tableID string) ([]*domain.Order, error) {
	db := DBFrom(ctx, r.db)
	query := db.Preload("Items").Order("created_at DESC")
	if tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}
	var models []OrderModel
	if err := query.Find(&models).Error; err != nil {
		return nil, perrors.Wrap(err, "failed to list orders")
	}
	orders := make([]*domain.Order, 0, len(models))
	for i := range models {
		orders = append(orders, ToDomainOrder(&models[i]))
	}
	return orders, nil
}

func terminalStatuses() []string {
	return []string{
		string(domain.StatusCompleted),
		string(domain.StatusRejected),
		string(domain.StatusCancelled),
	}
}
