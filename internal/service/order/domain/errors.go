// internal/service/order/domain/errors.go
package domain

import "errors"

// 领域错误。这些错误会在写入任何数据之前同步返回给调用方，
// 由接口层翻译成对客户端友好的响应。
var (
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be at least 1")
	ErrOrderNotFound       = errors.New("order not found")
	ErrItemNotFound        = errors.New("order item not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product is not orderable")
	ErrModifierNotFound    = errors.New("modifier option not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrTableInactive       = errors.New("table is not in service")
	ErrVoucherNotFound     = errors.New("voucher not found")
	ErrVoucherInactive     = errors.New("voucher is not active")
	ErrVoucherExpired      = errors.New("voucher has expired")
	ErrVoucherExhausted    = errors.New("voucher usage limit reached")
	ErrVoucherBelowMinimum = errors.New("order subtotal is below voucher minimum")
	ErrVoucherNotEligible  = errors.New("order does not satisfy voucher eligibility rule")
	ErrPointsNotMultiple   = errors.New("points redemption must be a multiple of 100, minimum 100")
	ErrInsufficientPoints  = errors.New("insufficient loyalty point balance")
	ErrNoLoyaltyAccount    = errors.New("customer has no loyalty account")
	ErrInvalidTransition   = errors.New("illegal status transition")
	ErrUnknownRequestKind  = errors.New("unknown table service request kind")
	ErrInvalidDiscount     = errors.New("discount value must be between zero and the order subtotal")
)
