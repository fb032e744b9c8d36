// internal/service/order/domain/pricing.go
package domain

// 定价与折扣计算。全部为纯函数，不做任何 I/O，
// 方便在事务内外复用，也方便单独测试。

// 积分兑换规则: 每次核销必须是 100 积分的整数倍，最少 100 分，
// 每 100 积分抵扣 10000 货币单位。完成订单时按应付金额每满 10000 返 1 积分。
const (
	PointsRedeemStep  = 100   // 核销步长（积分）
	PointsRedeemValue = 10000 // 每 100 积分抵扣的金额
	PointsEarnDivisor = 10000 // 每满多少金额返 1 积分
)

// UnitPrice 计算单价快照: 商品基础价 + 所有选中调味项的加价。
// 快照在加入订单时固定，之后不随菜单价格变化重算。
func UnitPrice(basePrice int64, adjustments []int64) int64 {
	price := basePrice
	for _, adj := range adjustments {
		price += adj
	}
	return price
}

// LineTotal 计算行小计。
func LineTotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// SubtotalOf 计算一组菜品的订单小计。
func SubtotalOf(items []OrderItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.LineTotal
	}
	return sum
}

// VoucherDiscountAmount 计算代金券在给定小计上的折扣金额。
// PERCENT 按比例，FIXED 不超过小计。
func VoucherDiscountAmount(kind DiscountKind, value, subtotal int64) int64 {
	return Discount{Kind: kind, Value: value}.AmountOn(subtotal)
}

// ValidateRedeemPoints 校验核销积分数是否符合兑换规则。
func ValidateRedeemPoints(points int64) error {
	if points < PointsRedeemStep || points%PointsRedeemStep != 0 {
		return ErrPointsNotMultiple
	}
	return nil
}

// PointsDiscountAmount 计算积分核销对应的折扣金额，上限为订单小计。
func PointsDiscountAmount(points, subtotal int64) int64 {
	amount := points / PointsRedeemStep * PointsRedeemValue
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// CombineDiscounts 将代金券折扣与积分折扣合并成存储在订单上的单一折扣描述符。
//   - 两者同时存在: 折算成两者金额之和的 FIXED 折扣（各自来源不再保留）
//   - 仅积分: 同样存为 FIXED 金额
//   - 仅代金券: 保留代金券自身的 kind/value
//   - 都没有: NONE
//
// 合并后的折扣金额不会超过小计。
func CombineDiscounts(voucher *Discount, pointsAmount, subtotal int64) Discount {
	switch {
	case voucher != nil && pointsAmount > 0:
		combined := voucher.AmountOn(subtotal) + pointsAmount
		if combined > subtotal {
			combined = subtotal
		}
		return Discount{Kind: DiscountFixed, Value: combined}
	case pointsAmount > 0:
		return Discount{Kind: DiscountFixed, Value: pointsAmount}
	case voucher != nil:
		return *voucher
	default:
		return NoDiscount()
	}
}

// PayableAmount 计算应付金额，永不为负。
func PayableAmount(subtotal int64, d Discount) int64 {
	payable := subtotal - d.AmountOn(subtotal)
	if payable < 0 {
		return 0
	}
	return payable
}

// EarnedPoints 计算订单完成后按应付金额返还的积分数。
func EarnedPoints(payable int64) int64 {
	return payable / PointsEarnDivisor
}
