package order

import (
	"fmt"

	"restaurant/domain/shared"
)

// Transitions 真实订单的状态转换表
type Transitions = *shared.TransitionTable[Status]

const (
	PolicyStrict     = "strict"
	PolicyPermissive = "permissive"
)

// StrictTransitions 只允许沿里程碑向前（可跳过中间状态），以及从任意非终态取消
func StrictTransitions() Transitions {
	t := shared.NewTransitionTable[Status](PolicyStrict)
	milestones := []Status{StatusCreated, StatusPreparing, StatusReady, StatusDelivering, StatusReceived}
	for i, from := range milestones {
		if from.IsTerminal() {
			continue
		}
		t.Allow(from, milestones[i+1:]...)
		t.Allow(from, StatusCanceled)
	}
	return t
}

// PermissiveTransitions 任意真实订单状态之间都可以互相转换（人工纠错）
func PermissiveTransitions() Transitions {
	t := shared.NewTransitionTable[Status](PolicyPermissive)
	for _, from := range RealStatuses {
		t.Allow(from, RealStatuses...)
	}
	return t
}

// TransitionsFor 按配置名称选择转换表
func TransitionsFor(policy string) (Transitions, error) {
	switch policy {
	case "", PolicyStrict:
		return StrictTransitions(), nil
	case PolicyPermissive:
		return PermissiveTransitions(), nil
	default:
		return nil, fmt.Errorf("unknown order transition policy %q", policy)
	}
}
