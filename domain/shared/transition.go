package shared

// TransitionTable 显式状态转换表：(当前状态, 目标状态) -> 允许/拒绝
// 相同状态之间的写入视为无操作，不经过转换表
type TransitionTable[S comparable] struct {
	name  string
	edges map[S]map[S]struct{}
}

// NewTransitionTable 创建空转换表
func NewTransitionTable[S comparable](name string) *TransitionTable[S] {
	return &TransitionTable[S]{
		name:  name,
		edges: make(map[S]map[S]struct{}),
	}
}

// Allow 登记 from -> to 的合法转换，可链式调用
func (t *TransitionTable[S]) Allow(from S, to ...S) *TransitionTable[S] {
	targets, ok := t.edges[from]
	if !ok {
		targets = make(map[S]struct{}, len(to))
		t.edges[from] = targets
	}
	for _, s := range to {
		targets[s] = struct{}{}
	}
	return t
}

// Allows 判断转换是否合法
func (t *TransitionTable[S]) Allows(from, to S) bool {
	if from == to {
		return true
	}
	_, ok := t.edges[from][to]
	return ok
}

// Targets 返回某状态可达的目标状态（无序）
func (t *TransitionTable[S]) Targets(from S) []S {
	targets := make([]S, 0, len(t.edges[from]))
	for s := range t.edges[from] {
		targets = append(targets, s)
	}
	return targets
}

func (t *TransitionTable[S]) Name() string {
	return t.name
}
