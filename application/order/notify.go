package order

import (
	"fmt"

	"restaurant/domain/notification"
	"restaurant/domain/order"
)

var milestoneTypes = map[order.Milestone]notification.Type{
	order.MilestoneAccepted:       notification.TypeOrderAccepted,
	order.MilestoneReady:          notification.TypeOrderReady,
	order.MilestoneOutForDelivery: notification.TypeOrderOutForDelivery,
	order.MilestoneDelivered:      notification.TypeOrderDelivered,
}

var milestoneMessages = map[order.Milestone]string{
	order.MilestoneAccepted:       "Your order %s has been accepted",
	order.MilestoneReady:          "Your order %s is ready",
	order.MilestoneOutForDelivery: "Your order %s is out for delivery",
	order.MilestoneDelivered:      "Your order %s has been delivered",
}

// milestoneDraft 里程碑通知发给订单所属用户
func milestoneDraft(userID, orderID string, m order.Milestone) notification.Draft {
	return notification.Draft{
		UserID:  &userID,
		Type:    milestoneTypes[m],
		Message: fmt.Sprintf(milestoneMessages[m], orderID),
	}
}

// newOrderDraft 新订单广播给员工
func newOrderDraft(orderID string) notification.Draft {
	return notification.Draft{
		Type:    notification.TypeNewOrder,
		Message: fmt.Sprintf("New order %s has been placed", orderID),
	}
}
