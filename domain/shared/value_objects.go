package shared

import "strings"

// SortOrder 排序方向
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder 不区分大小写解析，无法识别时返回 fallback
func ParseSortOrder(s string, fallback SortOrder) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return fallback
	}
}

// Page 分页请求值对象
type Page struct {
	number int
	limit  int
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// NewPage 把越界的页码、页大小钳制到合法范围
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{number: number, limit: limit}
}

func (p Page) Number() int { return p.number }
func (p Page) Limit() int { return p.limit }

// Offset 返回 SQL OFFSET
func (p Page) Offset() int {
	return (p.number - 1) * p.limit
}

// TotalPages 根据总数计算页数
func (p Page) TotalPages(total int64) int {
	if total <= 0 || p.limit <= 0 {
		return 0
	}
	return int((total + int64(p.limit) - 1) / int64(p.limit))
}

// Window 对内存中的切片应用分页
func Window[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
