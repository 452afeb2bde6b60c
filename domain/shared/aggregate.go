package shared

// AggregateRoot 聚合根接口
// 聚合根是一致性边界的入口：所有修改必须经由聚合根，领域事件也由聚合根记录
type AggregateRoot interface {
	// ID 返回聚合根的全局唯一标识
	ID() string

	// Version 返回当前版本号，用于乐观锁并发控制
	Version() int

	// PullEvents 获取并清空聚合根记录的领域事件
	// UoW 在提交前调用，把事件写入 outbox 表
	PullEvents() []DomainEvent
}

// Entity 实体接口（有标识、通过 ID 判断相等）
type Entity interface {
	ID() string
}
