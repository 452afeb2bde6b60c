/*
Package mocks 仓储端口的内存实现

用于 database.type=memory 以及应用层测试。每个仓储用 sync.RWMutex 保护，
保存和读取时都复制聚合，调用方拿到的对象与仓储内部状态互不影响，
乐观锁、唯一约束、软删除的行为与 MySQL 实现保持一致。
*/
package mocks

import (
	"cmp"
	"slices"
	"time"

	"restaurant/domain/shared"
)

// sortAndPage 稳定排序（同值按 id 升序）后按页截取
func sortAndPage[T any](items []T, compare func(a, b T) int, id func(T) string, order shared.SortOrder, page shared.Page) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		c := compare(a, b)
		if order == shared.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
	return shared.Window(items, page)
}

// compareTimePtr nil 排在最前，与 MySQL 升序中 NULL 的位置一致
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
