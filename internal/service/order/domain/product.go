// internal/service/order/domain/product.go
package domain

// Product 是从菜单目录读出来的商品快照。订单核心只读菜单，不写菜单。
type Product struct {
	ID         string
	Name       string
	BasePrice  int64
	Available  bool
	TrackStock bool
}

// ModifierOption 是商品上可选的调味/规格项。
type ModifierOption struct {
	ID              string
	ProductID       string
	Name            string
	PriceAdjustment int64
}
