// internal/service/order/infrastructure/mapper.go
package infrastructure

import (
	"encoding/json"

	"tably/internal/service/order/domain"
)

// ToDomainOrder 将数据库模型转换为领域模型。
func ToDomainOrder(m *OrderModel) *domain.Order {
	if m == nil {
		return nil
	}
	items := make([]domain.OrderItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, ToDomainOrderItem(&m.Items[i]))
	}
	return &domain.Order{
		ID:         m.ID,
		TableID:    m.TableID,
		CustomerID: m.CustomerID,
		Status:     domain.Status(m.Status),
		Subtotal:   m.Subtotal,
		Discount:   domain.Discount{Kind: domain.DiscountKind(m.DiscountKind), Value: m.DiscountValue},
		Notes:      m.Notes,
		Items:      items,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToDomainOrderItem 将菜品行模型转换为领域模型。
func ToDomainOrderItem(m *OrderItemModel) domain.OrderItem {
	var modifiers []domain.ModifierSelection
	if m.Modifiers != "" {
		// 快照损坏属于数据问题，这里按无调味项处理而不是让整单查询失败
		_ = json.Unmarshal([]byte(m.Modifiers), &modifiers)
	}
	return domain.OrderItem{
		ID:        m.ID,
		ProductID: m.ProductID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		LineTotal: m.LineTotal,
		Status:    domain.ItemStatus(m.Status),
		Modifiers: modifiers,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomainOrder 将领域模型转换为数据库模型（用于插入或整体更新）。
func FromDomainOrder(o *domain.Order) *OrderModel {
	items := make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, FromDomainOrderItem(o.ID, &o.Items[i]))
	}
	return &OrderModel{
		ID:            o.ID,
		TableID:       o.TableID,
		CustomerID:    o.CustomerID,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal,
		DiscountKind:  string(o.Discount.Kind),
		DiscountValue: o.Discount.Value,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}

// FromDomainOrderItem 将菜品行领域模型转换为数据库模型。
func FromDomainOrderItem(orderID string, it *domain.OrderItem) OrderItemModel {
	modifiers := ""
	if len(it.Modifiers) > 0 {
		if data, err := json.Marshal(it.Modifiers); err == nil {
			modifiers = string(data)
		}
	}
	return OrderItemModel{
		ID:        it.ID,
		OrderID:   orderID,
		ProductID: it.ProductID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		LineTotal: it.LineTotal,
		Status:    string(it.Status),
		Modifiers: modifiers,
		CreatedAt: it.CreatedAt,
	}
}

// ToDomainVoucher 将代金券模型转换为领域模型。
func ToDomainVoucher(m *VoucherModel) *domain.Voucher {
	if m == nil {
		return nil
	}
	return &domain.Voucher{
		ID:              m.ID,
		Code:            m.Code,
		Kind:            domain.DiscountKind(m.Kind),
		Value:           m.Value,
		MinOrderAmount:  m.MinOrderAmount,
		UsageLimit:      m.UsageLimit,
		UsedCount:       m.UsedCount,
		Active:          m.Active,
		ExpiresAt:       m.ExpiresAt,
		EligibilityRule: m.EligibilityRule,
	}
}

// ToDomainAccount 将积分账户模型转换为领域模型。
func ToDomainAccount(m *LoyaltyAccountModel) *domain.LoyaltyAccount {
	if m == nil {
		return nil
	}
	return &domain.LoyaltyAccount{
		CustomerID:       m.CustomerID,
		Balance:          m.Balance,
		LifetimeEarned:   m.LifetimeEarned,
		LifetimeRedeemed: m.LifetimeRedeemed,
		Tier:             domain.Tier(m.Tier),
	}
}

// ToDomainProduct 将商品模型转换为领域快照。
func ToDomainProduct(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}
	return &domain.Product{
		ID:         m.ID,
		Name:       m.Name,
		BasePrice:  m.BasePrice,
		Available:  m.Available,
		TrackStock: m.TrackStock,
	}
}
