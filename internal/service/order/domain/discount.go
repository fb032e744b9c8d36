// internal/service/order/domain/discount.go
package domain

// DiscountKind 定义了订单折扣的类型
type DiscountKind string

const (
	DiscountNone    DiscountKind = "NONE"
	DiscountPercent DiscountKind = "PERCENT"
	DiscountFixed   DiscountKind = "FIXED"
)

// Discount 是挂在订单上的折扣描述符。
// Value 的含义取决于 Kind: PERCENT 时为百分比 (0-100)，FIXED 时为固定金额。
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value int64        `json:"value"`
}

// NoDiscount 表示没有任何折扣。
func NoDiscount() Discount {
	return Discount{Kind: DiscountNone}
}

// AmountOn 计算该折扣在给定小计上实际减免的金额。
// 结果永远被限制在 [0, subtotal] 区间内，保证应付金额不为负。
func (d Discount) AmountOn(subtotal int64) int64 {
	var amount int64
	switch d.Kind {
	case DiscountPercent:
		amount = subtotal * d.Value / 100
	case DiscountFixed:
		amount = d.Value
	default:
		return 0
	}
	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// Valid 校验折扣描述符本身是否合法（不含与小计的关系）。
func (d Discount) Valid() bool {
	switch d.Kind {
	case DiscountNone:
		return d.Value == 0
	case DiscountPercent:
		return d.Value >= 0 && d.Value <= 100
	case DiscountFixed:
		return d.Value >= 0
	}
	return false
}
