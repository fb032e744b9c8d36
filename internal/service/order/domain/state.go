// internal/service/order/domain/state.go
package domain

// Status 定义了订单的生命周期状态
type Status string

const (
	StatusPending   Status = "PENDING"   // 顾客已提交，等待员工确认
	StatusAccepted  Status = "ACCEPTED"  // 员工已接单，进入厨房队列
	StatusPreparing Status = "PREPARING" // 厨房制作中
	StatusReady     Status = "READY"     // 全部菜品已出餐，等待上桌
	StatusServed    Status = "SERVED"    // 已上桌
	StatusCompleted Status = "COMPLETED" // 已结账完成 (终态)
	StatusRejected  Status = "REJECTED"  // 员工拒单 (终态, 只能从 PENDING 进入)
	StatusCancelled Status = "CANCELLED" // 已取消 (终态, 任意非终态可进入)
)

// ItemStatus 定义了单个菜品的制作状态
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusPreparing ItemStatus = "PREPARING"
	ItemStatusReady     ItemStatus = "READY"
	ItemStatusServed    ItemStatus = "SERVED"
	ItemStatusCancelled ItemStatus = "CANCELLED"
)

// statusRank 给前进方向上的状态一个单调递增的序号。
// 状态只允许沿序号增大的方向流转，保证订单状态永不回退。
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusAccepted:  1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusServed:    4,
	StatusCompleted: 5,
}

var itemStatusRank = map[ItemStatus]int{
	ItemStatusPending:   0,
	ItemStatusPreparing: 1,
	ItemStatusReady:     2,
	ItemStatusServed:    3,
}

// IsTerminal 判断状态是否为终态，终态订单不再接受任何流转。
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// Valid 判断是否为已知的订单状态。
func (s Status) Valid() bool {
	if _, ok := statusRank[s]; ok {
		return true
	}
	return s == StatusRejected || s == StatusCancelled
}

// Valid 判断是否为已知的菜品状态。
func (s ItemStatus) Valid() bool {
	if _, ok := itemStatusRank[s]; ok {
		return true
	}
	return s == ItemStatusCancelled
}

// CanTransition 判断订单状态能否从 from 流转到 to。
// 规则:
//   - 终态不可再流转
//   - REJECTED 只能从 PENDING 进入
//   - CANCELLED 可从任意非终态进入
//   - 其余状态只能沿前进方向移动。允许跳级，比如 ACCEPTED 直接到 SERVED，
//     因为菜品级别的 rollup 可能一次跨越多个阶段
func CanTransition(from, to Status) bool {
	if from.IsTerminal() || from == to {
		return false
	}
	switch to {
	case StatusRejected:
		return from == StatusPending
	case StatusCancelled:
		return true
	}
	fromRank, ok1 := statusRank[from]
	toRank, ok2 := statusRank[to]
	return ok1 && ok2 && toRank > fromRank
}

// CanTransitionItem 判断菜品状态能否从 from 流转到 to，规则与订单一致。
func CanTransitionItem(from, to ItemStatus) bool {
	if from == ItemStatusCancelled || from == to {
		return false
	}
	if to == ItemStatusCancelled {
		return true
	}
	fromRank, ok1 := itemStatusRank[from]
	toRank, ok2 := itemStatusRank[to]
	return ok1 && ok2 && toRank > fromRank
}

// TableStatus 定义了餐桌的占用状态
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
	TableInactive  TableStatus = "INACTIVE"
)
