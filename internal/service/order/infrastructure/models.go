// internal/service/order/infrastructure/models.go
package infrastructure

import (
	"time"
)

// OrderModel 对应数据库中的 orders 表。
type OrderModel struct {
	ID            string `gorm:"primaryKey;size:36"`
	TableID       string `gorm:"size:36;index"`
	CustomerID    string `gorm:"size:36;index"`
	Status        string `gorm:"size:20;index"`
	Subtotal      int64
	DiscountKind  string `gorm:"size:10"`
	DiscountValue int64
	Notes         string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 对应 order_items 表。Modifiers 以 JSON 形式存储
// 下单时点的调味项快照。
type OrderItemModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	OrderID   string `gorm:"size:36;index"`
	ProductID string `gorm:"size:36;index"`
	Name      string `gorm:"size:100"`
	Quantity  int
	UnitPrice int64
	LineTotal int64
	Status    string `gorm:"size:20"`
	Modifiers string `gorm:"type:json"`
	CreatedAt time.Time
}

func (OrderItemModel) TableName() string { return "order_items" }

// ProductModel 是菜单目录的只读投影。
type ProductModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"size:100"`
	BasePrice  int64
	Available  bool
	TrackStock bool
}

func (ProductModel) TableName() string { return "products" }

// ModifierOptionModel 是商品调味项的只读投影。
type ModifierOptionModel struct {
	ID              string `gorm:"primaryKey;size:36"`
	ProductID       string `gorm:"size:36;index"`
	Name            string `gorm:"size:100"`
	PriceAdjustment int64
}

func (ModifierOptionModel) TableName() string { return "modifier_options" }

// TableModel 对应 dining_tables 表。
type TableModel struct {
	ID     string `gorm:"primaryKey;size:36"`
	Status string `gorm:"size:20"`
}

func (TableModel) TableName() string { return "dining_tables" }

// VoucherModel 对应 vouchers 表。
type VoucherModel struct {
	ID              string `gorm:"primaryKey;size:36"`
	Code            string `gorm:"size:50;uniqueIndex"`
	Kind            string `gorm:"size:10"`
	Value           int64
	MinOrderAmount  int64
	UsageLimit      int64
	UsedCount       int64
	Active          bool
	ExpiresAt       time.Time
	EligibilityRule string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (VoucherModel) TableName() string { return "vouchers" }

// LoyaltyAccountModel 对应 loyalty_accounts 表。
type LoyaltyAccountModel struct {
	CustomerID       string `gorm:"primaryKey;size:36"`
	Balance          int64
	LifetimeEarned   int64
	LifetimeRedeemed int64
	Tier             string `gorm:"size:10"`
	UpdatedAt        time.Time
}

func (LoyaltyAccountModel) TableName() string { return "loyalty_accounts" }

// LoyaltyTransactionModel 是只追加的积分流水。
type LoyaltyTransactionModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	CustomerID string `gorm:"size:36;index"`
	OrderID    string `gorm:"size:36;index"`
	Kind       string `gorm:"size:10"`
	Points     int64
	CreatedAt  time.Time
}

func (LoyaltyTransactionModel) TableName() string { return "loyalty_transactions" }

// InventoryModel 对应 inventory_records 表。
// 没有库存记录的商品视为不跟踪库存。
type InventoryModel struct {
	ProductID    string `gorm:"primaryKey;size:36"`
	Quantity     int64
	MinThreshold int64
	MaxThreshold int64
	UpdatedAt    time.Time
}

func (InventoryModel) TableName() string { return "inventory_records" }

// InventoryTransactionModel 是只追加的库存流水，记录每次变动前后的快照。
type InventoryTransactionModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;index"`
	OrderID   string `gorm:"size:36;index"`
	Delta     int64
	BeforeQty int64
	AfterQty  int64
	CreatedAt time.Time
}

func (InventoryTransactionModel) TableName() string { return "inventory_transactions" }
