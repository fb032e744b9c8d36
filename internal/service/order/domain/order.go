// internal/service/order/domain/order.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModifierSelection 记录下单时选中的调味项及其当时的加价，
// 之后菜单怎么改都不影响已有订单的审计口径。
type ModifierSelection struct {
	OptionID   string `json:"optionId"`
	Name       string `json:"name"`
	Adjustment int64  `json:"adjustment"`
}

// OrderItem 是订单中的一行菜品。单价与行小计在加入订单时固定。
type OrderItem struct {
	ID        string              `json:"id"`
	ProductID string              `json:"productId"`
	Name      string              `json:"name"`
	Quantity  int                 `json:"quantity"`
	UnitPrice int64               `json:"unitPrice"`
	LineTotal int64               `json:"lineTotal"`
	Status    ItemStatus          `json:"status"`
	Modifiers []ModifierSelection `json:"modifiers,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Order 是订单聚合的根实体。
// 不变式: Subtotal 恒等于所有行小计之和；折扣金额恒在 [0, Subtotal] 内。
type Order struct {
	ID         string      `json:"id"`
	TableID    string      `json:"tableId"`
	CustomerID string      `json:"customerId,omitempty"`
	Status     Status      `json:"status"`
	Subtotal   int64       `json:"subtotal"`
	Discount   Discount    `json:"discount"`
	Notes      string      `json:"notes,omitempty"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewOrder 创建一个新的 PENDING 订单。items 必须已经过定价引擎计算。
func NewOrder(tableID, customerID, notes string, items []OrderItem, discount Discount) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	now := time.Now()
	return &Order{
		ID:         uuid.New().String(),
		TableID:    tableID,
		CustomerID: customerID,
		Status:     StatusPending,
		Subtotal:   SubtotalOf(items),
		Discount:   discount,
		Notes:      notes,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NewOrderItem 构造一行菜品，单价快照 = 基础价 + 调味项加价。
func NewOrderItem(product *Product, quantity int, modifiers []ModifierSelection) (OrderItem, error) {
	if quantity < 1 {
		return OrderItem{}, ErrInvalidQuantity
	}
	adjustments := make([]int64, 0, len(modifiers))
	for _, m := range modifiers {
		adjustments = append(adjustments, m.Adjustment)
	}
	unit := UnitPrice(product.BasePrice, adjustments)
	return OrderItem{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: unit,
		LineTotal: LineTotal(unit, quantity),
		Status:    ItemStatusPending,
		Modifiers: modifiers,
		CreatedAt: time.Now(),
	}, nil
}

// IsOpen 判断订单是否仍处于非终态。一张桌子同时最多只能有一张 open 订单。
func (o *Order) IsOpen() bool {
	return !o.Status.IsTerminal()
}

// Append 把新的菜品行追加到现有订单上，小计随之累加。
func (o *Order) Append(items []OrderItem) {
	o.Items = append(o.Items, items...)
	o.Subtotal += SubtotalOf(items)
	o.UpdatedAt = time.Now()
}

// SetDiscount 覆盖订单折扣。折扣金额不得超过当前小计。
func (o *Order) SetDiscount(d Discount) error {
	if !d.Valid() || (d.Kind == DiscountFixed && d.Value > o.Subtotal) {
		return ErrInvalidDiscount
	}
	o.Discount = d
	o.UpdatedAt = time.Now()
	return nil
}

// TransitionTo 执行员工驱动的订单级状态流转。
func (o *Order) TransitionTo(to Status) error {
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

// ApplyItemStatus 更新一行菜品的状态，随后触发一次 rollup。
func (o *Order) ApplyItemStatus(itemID string, to ItemStatus) error {
	if o.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	idx := -1
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	if !CanTransitionItem(o.Items[idx].Status, to) {
		return ErrInvalidTransition
	}
	o.Items[idx].Status = to
	o.UpdatedAt = time.Now()
	o.RecomputeStatus()
	return nil
}

// RecomputeStatus 根据全部菜品状态重算订单状态 (rollup)。
// 规则（按优先级）:
//  1. 所有菜品 SERVED/CANCELLED -> 订单 SERVED
//  2. 所有菜品 READY/SERVED/CANCELLED -> 订单 READY
//  3. 任意菜品 PREPARING 且订单还没到 PREPARING -> 订单 PREPARING
//  4. 其余情况订单状态不变
//
// 该函数幂等: 菜品无变化时重复调用结果不变。订单状态只前进不后退。
func (o *Order) RecomputeStatus() {
	if o.Status.IsTerminal() {
		return
	}
	allServed := true
	allReady := true
	anyPreparing := false
	for i := range o.Items {
		switch o.Items[i].Status {
		case ItemStatusServed, ItemStatusCancelled:
		case ItemStatusReady:
			allServed = false
		case ItemStatusPreparing:
			allServed = false
			allReady = false
			anyPreparing = true
		default:
			allServed = false
			allReady = false
		}
	}

	switch {
	case allServed:
		o.advanceTo(StatusServed)
	case allReady:
		o.advanceTo(StatusReady)
	case anyPreparing && o.Status != StatusPreparing:
		o.advanceTo(StatusPreparing)
	}
}

// advanceTo 仅在目标状态是合法的前进方向时应用，rollup 永不使状态回退，
// 也不与员工已手动推进的状态冲突。
func (o *Order) advanceTo(to Status) {
	if CanTransition(o.Status, to) {
		o.Status = to
		o.UpdatedAt = time.Now()
	}
}

// DiscountAmount 返回当前折扣在当前小计上实际减免的金额。
func (o *Order) DiscountAmount() int64 {
	return o.Discount.AmountOn(o.Subtotal)
}

// Payable 返回应付金额，恒 >= 0。
func (o *Order) Payable() int64 {
	return PayableAmount(o.Subtotal, o.Discount)
}

// ItemByID 按 ID 查找菜品行。
func (o *Order) ItemByID(itemID string) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], true
		}
	}
	return nil, false
}
