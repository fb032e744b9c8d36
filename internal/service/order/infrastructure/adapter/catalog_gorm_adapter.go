// internal/service/order/infrastructure/adapter/catalog_gorm_adapter.go
package adapter

import (
	"context"
	"errors"

	perrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"tably/internal/service/order/domain"
	"tably/internal/service/order/infrastructure"
)

// CatalogGormAdapter 是 port.Catalog 的 GORM 实现。
// 菜单目录由外部模块维护，这里只做读取。
type CatalogGormAdapter struct {
	db *gorm.DB
}

func NewCatalogGormAdapter(db *gorm.DB) *CatalogGormAdapter {
	return &CatalogGormAdapter{db: db}
}

// FindProduct 查找商品快照。
func (a *CatalogGormAdapter) FindProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var model infrastructure.ProductModel
	err := a.db.WithContext(ctx).Where("id = ?", productID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, perrors.Wrap(err, "failed to load product")
	}
	return infrastructure.ToDomainProduct(&model), nil
}

// ResolveModifiers 解析选中的调味项。任一选项不存在
// 或不属于该商品都算请求非法。
func (a *CatalogGormAdapter) ResolveModifiers(ctx context.Context, productID string, optionIDs []string) ([]domain.ModifierSelection, error) {
	var models []infrastructure.ModifierOptionModel
	err := a.db.WithContext(ctx).
		Where("id IN ? AND product_id = ?", optionIDs, productID).
		Find(&models).Error
	if err != nil {
		return nil, perrors.Wrap(err, "failed to load modifier options")
	}
	if len(models) != len(optionIDs) {
		return nil, domain.ErrModifierNotFound
	}

	selections := make([]domain.ModifierSelection, 0, len(models))
	for _, m := range models {
		selections = append(selections, domain.ModifierSelection{
			OptionID:   m.ID,
			Name:       m.Name,
			Adjustment: m.PriceAdjustment,
		})
	}
	return selections, nil
}
