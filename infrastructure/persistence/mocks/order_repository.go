package mocks

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"restaurant/domain/order"
)

type storedOrder struct {
	order   *order.Order
	deleted bool
}

// MockOrderRepository 订单仓储的内存实现
type MockOrderRepository struct {
	orders map[string]*storedOrder
	mu     sync.RWMutex
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*storedOrder),
	}
}

func cloneOrder(o *order.Order) *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          o.ID(),
		UserID:      o.UserID(),
		Status:      o.Status(),
		TotalPrice:  o.TotalPrice(),
		AcceptedAt:  o.AcceptedAt(),
		DeliveredAt: o.DeliveredAt(),
		ReceivedAt:  o.ReceivedAt(),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	})
}

// GetOrCreateSingleton 在写锁内完成查找与插入，并发首次访问只会产生一行
func (r *MockOrderRepository) GetOrCreateSingleton(ctx context.Context, candidate *order.Order) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := candidate.SingletonKey()
	if key == "" {
		return nil, order.NewWrongRoleError("get-or-create", candidate.Role())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findByKeyLocked(key); existing != nil {
		return cloneOrder(existing), nil
	}

	stored := cloneOrder(candidate)
	stored.IncrementVersionForSave()
	r.orders[stored.ID()] = &storedOrder{order: stored}
	return cloneOrder(stored), nil
}

func (r *MockOrderRepository) FindSingleton(ctx context.Context, userID string, role order.Role) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := order.SingletonKey(userID, role)
	if existing := r.findByKeyLocked(key); existing != nil {
		return cloneOrder(existing), nil
	}
	return nil, order.NewOrderNotFoundError(key)
}

func (r *MockOrderRepository) findByKeyLocked(key string) *order.Order {
	for _, s := range r.orders {
		if !s.deleted && s.order.SingletonKey() == key {
			return s.order
		}
	}
	return nil
}

func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.orders[o.ID()]
	if o.IsNew() {
		if exists {
			return order.NewConcurrentModificationError(o.ID())
		}
	} else {
		if !exists || existing.deleted {
			return order.NewOrderNotFoundError(o.ID())
		}
		if existing.order.Version() != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	if key := o.SingletonKey(); key != "" {
		if other := r.findByKeyLocked(key); other != nil && other.ID() != o.ID() {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	o.IncrementVersionForSave()
	r.orders[o.ID()] = &storedOrder{order: cloneOrder(o)}
	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.orders[id]
	if !exists || s.deleted {
		return nil, order.NewOrderNotFoundError(id)
	}
	return cloneOrder(s.order), nil
}

func (r *MockOrderRepository) List(ctx context.Context, criteria order.ListCriteria) ([]*order.Order, int64, error) {
	r.mu.RLock()
	var matched []*order.Order
	for _, s := range r.orders {
		if s.deleted {
			continue
		}
		if criteria.Spec != nil && !criteria.Spec.IsSatisfiedBy(ctx, s.order) {
			continue
		}
		matched = append(matched, cloneOrder(s.order))
	}
	r.mu.RUnlock()

	total := int64(len(matched))
	page := sortAndPage(matched, orderComparator(criteria.SortBy), (*order.Order).ID, criteria.SortOrder, criteria.Page)
	return page, total, nil
}

func orderComparator(field order.SortField) func(a, b *order.Order) int {
	switch field {
	case order.SortByStatus:
		return func(a, b *order.Order) int { return cmp.Compare(a.Status(), b.Status()) }
	case order.SortByTotalPrice:
		return func(a, b *order.Order) int {
			ta, tb := a.TotalPrice(), b.TotalPrice()
			switch {
			case !ta.Valid && !tb.Valid:
				return 0
			case !ta.Valid:
				return -1
			case !tb.Valid:
				return 1
			default:
				return ta.Decimal.Cmp(tb.Decimal)
			}
		}
	case order.SortByAcceptedAt:
		return func(a, b *order.Order) int { return compareTimePtr(a.AcceptedAt(), b.AcceptedAt()) }
	case order.SortByDeliveredAt:
		return func(a, b *order.Order) int { return compareTimePtr(a.DeliveredAt(), b.DeliveredAt()) }
	case order.SortByReceivedAt:
		return func(a, b *order.Order) int { return compareTimePtr(a.ReceivedAt(), b.ReceivedAt()) }
	default:
		return func(a, b *order.Order) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	}
}

// Remove 软删除，释放 singleton key
func (r *MockOrderRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.orders[id]
	if !exists || s.deleted {
		return order.NewOrderNotFoundError(id)
	}
	s.deleted = true
	return nil
}

var _ order.Repository = (*MockOrderRepository)(nil)

// MockLineRepository 订单行仓储的内存实现，(orderID, productID) 唯一
type MockLineRepository struct {
	lines map[string]*order.Line
	mu    sync.RWMutex
}

func NewMockLineRepository() *MockLineRepository {
	return &MockLineRepository{
		lines: make(map[string]*order.Line),
	}
}

func cloneLine(l *order.Line) *order.Line {
	return order.RebuildLineFromDTO(order.LineReconstructionDTO{
		ID:            l.ID(),
		OrderID:       l.OrderID(),
		ProductID:     l.ProductID(),
		NameSnapshot:  l.NameSnapshot(),
		PriceSnapshot: l.PriceSnapshot(),
		Quantity:      l.Quantity(),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	})
}

func (r *MockLineRepository) FindByOrderID(ctx context.Context, orderID string) ([]*order.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(orderID), nil
}

func (r *MockLineRepository) FindByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]*order.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]*order.Line, len(orderIDs))
	for _, id := range orderIDs {
		if lines := r.sortedLocked(id); len(lines) > 0 {
			result[id] = lines
		}
	}
	return result, nil
}

func (r *MockLineRepository) sortedLocked(orderID string) []*order.Line {
	var lines []*order.Line
	for _, l := range r.lines {
		if l.OrderID() == orderID {
			lines = append(lines, cloneLine(l))
		}
	}
	sortLines(lines)
	return lines
}

// sortLines 与 MySQL 的 ORDER BY created_at, id 一致
func sortLines(lines []*order.Line) {
	slices.SortFunc(lines, func(a, b *order.Line) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
}

func (r *MockLineRepository) FindInOrder(ctx context.Context, orderID, lineID string) (*order.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lines[lineID]
	if !ok || l.OrderID() != orderID {
		return nil, order.NewLineNotFoundError("order line", lineID)
	}
	return cloneLine(l), nil
}

func (r *MockLineRepository) FindByProduct(ctx context.Context, orderID, productID string) (*order.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.lines {
		if l.OrderID() == orderID && l.ProductID() == productID {
			return cloneLine(l), nil
		}
	}
	return nil, order.NewLineNotFoundError("order line", productID)
}

func (r *MockLineRepository) Save(ctx context.Context, line *order.Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if line.IsNew() {
		for _, l := range r.lines {
			if l.OrderID() == line.OrderID() && l.ProductID() == line.ProductID() {
				return order.NewDuplicateLineError(line.OrderID(), line.ProductID())
			}
		}
		r.lines[line.ID()] = cloneLine(line)
		line.MarkPersisted()
		return nil
	}

	existing, ok := r.lines[line.ID()]
	if !ok || existing.OrderID() != line.OrderID() {
		return order.NewLineNotFoundError("order line", line.ID())
	}
	r.lines[line.ID()] = cloneLine(line)
	return nil
}

func (r *MockLineRepository) Remove(ctx context.Context, orderID, lineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lines[lineID]
	if !ok || l.OrderID() != orderID {
		return order.NewLineNotFoundError("order line", lineID)
	}
	delete(r.lines, lineID)
	return nil
}

func (r *MockLineRepository) RemoveAll(ctx context.Context, orderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, l := range r.lines {
		if l.OrderID() == orderID {
			delete(r.lines, id)
			n++
		}
	}
	return n, nil
}

var _ order.LineRepository = (*MockLineRepository)(nil)
