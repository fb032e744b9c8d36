// internal/service/order/application/dto.go
package application

// SubmitItemRequest 是提交订单时的一行菜品。
type SubmitItemRequest struct {
	ProductID         string   `json:"productId"`
	Quantity          int      `json:"quantity"`
	ModifierOptionIDs []string `json:"modifierOptionIds,omitempty"`
}

// SubmitOrderRequest 是 POST /orders 的请求体。
type SubmitOrderRequest struct {
	TableID        string              `json:"tableId"`
	Items          []SubmitItemRequest `json:"items"`
	Notes          string              `json:"notes,omitempty"`
	CustomerID     string              `json:"customerId,omitempty"`
	VoucherCode    string              `json:"voucherCode,omitempty"`
	PointsToRedeem int64               `json:"pointsToRedeem,omitempty"`
}

// UpdateStatusRequest 是订单/菜品状态流转的请求体。
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDiscountRequest 是员工折扣覆盖的请求体。
type UpdateDiscountRequest struct {
	DiscountType  string `json:"discountType"`
	DiscountValue int64  `json:"discountValue"`
}

// TableServiceRequest 是桌台服务请求（呼叫服务员/买单）的请求体。
type TableServiceRequest struct {
	Kind string `json:"kind"`
	Note string `json:"note,omitempty"`
}
