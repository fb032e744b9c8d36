// internal/service/order/domain/event.go
package domain

// 实时推送的房间。waiters 收到所有订单变化，kitchen 收到与出餐相关的变化，
// 每张桌子各有一个独立的服务请求房间。
const (
	RoomWaiters = "waiters"
	RoomKitchen = "kitchen"
)

// TableRoom 返回某张桌子的服务请求房间名。
func TableRoom(tableID string) string {
	return "table:" + tableID
}

// 实时事件名。
const (
	EventNewOrder          = "new_order"          // 新订单 -> waiters
	EventOrderToKitchen    = "order_to_kitchen"   // 员工接单, 厨房显示为新卡片
	EventOrderUpdated      = "order_updated"      // 后续一切变化 -> waiters + kitchen
	EventTableNotification = "table_notification" // 桌台服务请求, 与订单状态无关
)

// 桌台服务请求的种类。
const (
	TableRequestPaymentCash = "payment-cash"
	TableRequestPaymentQR   = "payment-qr"
	TableRequestAssistance  = "assistance"
)

// RealtimeEvent 是经由消息队列送往实时网关的信封。
type RealtimeEvent struct {
	Room    string      `json:"room"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// TableNotification 是桌台服务请求事件的负载。
type TableNotification struct {
	TableID string `json:"tableId"`
	Kind    string `json:"kind"`
	Note    string `json:"note,omitempty"`
}
