// internal/service/order/domain/voucher.go
package domain

import "time"

// Voucher 是一张折扣码。由员工创建，核销时原子地累加使用计数，
// 被核销记录引用期间不会被删除。
type Voucher struct {
	ID             string
	Code           string
	Kind           DiscountKind
	Value          int64
	MinOrderAmount int64
	UsageLimit     int64
	UsedCount      int64
	Active         bool
	ExpiresAt      time.Time

	// EligibilityRule 是可选的 CEL 表达式，在基础校验之外追加业务规则，
	// 例如 "subtotal >= 50000 && itemCount >= 2"。空串表示无附加规则。
	EligibilityRule string
}

// Validate 对代金券做基础校验: 激活、未过期、未用尽、满足最低消费。
// CEL 附加规则由调用方通过规则引擎单独评估。
func (v *Voucher) Validate(subtotal int64, now time.Time) error {
	if !v.Active {
		return ErrVoucherInactive
	}
	if !v.ExpiresAt.IsZero() && now.After(v.ExpiresAt) {
		return ErrVoucherExpired
	}
	if v.UsageLimit > 0 && v.UsedCount >= v.UsageLimit {
		return ErrVoucherExhausted
	}
	if subtotal < v.MinOrderAmount {
		return ErrVoucherBelowMinimum
	}
	return nil
}

// DiscountOn 计算该券在给定小计上的折扣描述符（保留券自身的 kind/value）。
func (v *Voucher) DiscountOn() Discount {
	return Discount{Kind: v.Kind, Value: v.Value}
}
