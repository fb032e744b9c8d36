package port

import (
	"context"

	"tably/internal/service/order/domain"
)

// PointsLedger 是积分台账的出站端口。
// 订单核心通过它读余额、记 EARN/REDEEM 流水，避免与会员模块双向耦合。
type PointsLedger interface {
	// Account 读取顾客积分账户，没有账户时返回 domain.ErrNoLoyaltyAccount。
	Account(ctx context.Context, customerID string) (*domain.LoyaltyAccount, error)

	// Debit 扣减积分并追加一条 REDEEM 流水。
	Debit(ctx context.Context, customerID string, points int64, orderID string) error

	// Credit 累加积分、追加一条 EARN 流水，并按累计获得积分重算会员等级。
	Credit(ctx context.Context, customerID string, points int64, orderID string) error
}
