package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patch 真实订单的部分更新；nil 字段表示未提供
type Patch struct {
	Status      *Status
	UserID      *string
	TotalPrice  *decimal.Decimal
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	ReceivedAt  *time.Time
}

// IsEmpty 未提供任何字段
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.UserID == nil && p.TotalPrice == nil &&
		p.AcceptedAt == nil && p.DeliveredAt == nil && p.ReceivedAt == nil
}

// Milestone 真实订单生命周期里程碑，每个最多触发一次通知
type Milestone string

const (
	MilestoneAccepted       Milestone = "ACCEPTED"
	MilestoneReady          Milestone = "READY"
	MilestoneOutForDelivery Milestone = "OUT_FOR_DELIVERY"
	MilestoneDelivered      Milestone = "DELIVERED"
)

// Snapshot 更新前后用于比较的订单状态
type Snapshot struct {
	status      Status
	userID      string
	totalPrice  string
	hasTotal    bool
	acceptedAt  bool
	deliveredAt bool
	receivedAt  bool
}

// DetectMilestones 比较更新前后状态，得出本次新到达的里程碑
// 状态必须是从不同的旧值转换过来；时间戳必须是从无到有
func DetectMilestones(before, after Snapshot) []Milestone {
	entered := func(s Status) bool {
		return after.status == s && before.status != s
	}

	var milestones []Milestone
	if (!before.acceptedAt && after.acceptedAt) || entered(StatusPreparing) {
		milestones = append(milestones, MilestoneAccepted)
	}
	if entered(StatusReady) {
		milestones = append(milestones, MilestoneReady)
	}
	if entered(StatusDelivering) {
		milestones = append(milestones, MilestoneOutForDelivery)
	}
	if (!before.deliveredAt && after.deliveredAt) || entered(StatusReceived) {
		milestones = append(milestones, MilestoneDelivered)
	}
	return milestones
}
