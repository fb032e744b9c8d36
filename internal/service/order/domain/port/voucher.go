package port

import (
	"context"

	"tably/internal/service/order/domain"
)

// VoucherStore 是代金券存储的出站端口。
type VoucherStore interface {
	// FindByCode 按券码查找，不存在时返回 domain.ErrVoucherNotFound。
	FindByCode(ctx context.Context, code string) (*domain.Voucher, error)

	// IncrementUsage 原子地把使用计数 +1，必须与订单写入处于同一事务。
	IncrementUsage(ctx context.Context, voucherID string) error
}

// RuleEngine 评估代金券上可选的资格规则表达式。
// 由基础设施层的 CEL 适配器实现。
type RuleEngine interface {
	// Evaluate 以订单事实为输入评估规则，返回是否通过。
	Evaluate(rule string, fact VoucherFact) (bool, error)
}

// VoucherFact 是规则评估的输入事实。
type VoucherFact struct {
	Subtotal   int64  `json:"subtotal"`
	ItemCount  int64  `json:"itemCount"`
	TableID    string `json:"tableId"`
	CustomerID string `json:"customerId"`
}
