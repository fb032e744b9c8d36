// internal/service/order/domain/loyalty.go
package domain

import "time"

// Tier 是会员等级，由累计获得的积分总数推导。
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// 等级门槛（按累计获得积分）。
const (
	tierSilverAt   = 2000
	tierGoldAt     = 5000
	tierPlatinumAt = 10000
)

// TierFor 根据累计获得积分推导会员等级。
func TierFor(lifetimeEarned int64) Tier {
	switch {
	case lifetimeEarned >= tierPlatinumAt:
		return TierPlatinum
	case lifetimeEarned >= tierGoldAt:
		return TierGold
	case lifetimeEarned >= tierSilverAt:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyAccount 是顾客的积分账户，交易流水只追加不修改。
type LoyaltyAccount struct {
	CustomerID       string
	Balance          int64
	LifetimeEarned   int64
	LifetimeRedeemed int64
	Tier             Tier
}

// LoyaltyTxKind 是积分流水的方向。
type LoyaltyTxKind string

const (
	LoyaltyEarn   LoyaltyTxKind = "EARN"
	LoyaltyRedeem LoyaltyTxKind = "REDEEM"
)

// LoyaltyTransaction 是一条积分流水。订单驱动的流水总是挂在订单上。
type LoyaltyTransaction struct {
	ID         string
	CustomerID string
	OrderID    string
	Kind       LoyaltyTxKind
	Points     int64 // 带符号: EARN 为正, REDEEM 为负
	CreatedAt  time.Time
}
