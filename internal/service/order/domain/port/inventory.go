package port

import "context"

// StockLedger 是库存台账的出站端口。
// 扣减时记录扣减前后的数量快照，流水只追加不修改。
type StockLedger interface {
	// Debit 按份数扣减某商品的库存。商品不启用库存跟踪时应当不做任何事。
	Debit(ctx context.Context, productID string, quantity int, orderID string) error
}
