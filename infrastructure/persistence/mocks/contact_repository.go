package mocks

import (
	"cmp"
	"context"
	"sync"

	"restaurant/domain/contact"
)

// MockContactRepository 留言仓储的内存实现
type MockContactRepository struct {
	messages map[string]*contact.Message
	mu       sync.RWMutex
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		messages: make(map[string]*contact.Message),
	}
}

func cloneContact(m *contact.Message) *contact.Message {
	return contact.Rebuild(contact.DTO{
		ID:        m.ID(),
		Name:      m.Name(),
		Email:     m.Email(),
		Subject:   m.Subject(),
		Body:      m.Body(),
		CreatedAt: m.CreatedAt(),
	})
}

func (r *MockContactRepository) Save(ctx context.Context, m *contact.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.ID()] = cloneContact(m)
	return nil
}

func (r *MockContactRepository) FindByID(ctx context.Context, id string) (*contact.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, contact.NewContactNotFoundError(id)
	}
	return cloneContact(m), nil
}

func (r *MockContactRepository) List(ctx context.Context, criteria contact.ListCriteria) ([]*contact.Message, int64, error) {
	r.mu.RLock()
	matched := make([]*contact.Message, 0, len(r.messages))
	for _, m := range r.messages {
		matched = append(matched, cloneContact(m))
	}
	r.mu.RUnlock()

	var compare func(a, b *contact.Message) int
	switch criteria.SortBy {
	case contact.SortByName:
		compare = func(a, b *contact.Message) int { return cmp.Compare(a.Name(), b.Name()) }
	case contact.SortByEmail:
		compare = func(a, b *contact.Message) int { return cmp.Compare(a.Email(), b.Email()) }
	default:
		compare = func(a, b *contact.Message) int { return a.CreatedAt().Compare(b.CreatedAt()) }
	}

	total := int64(len(matched))
	return sortAndPage(matched, compare, (*contact.Message).ID, criteria.SortOrder, criteria.Page), total, nil
}

func (r *MockContactRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[id]; !ok {
		return contact.NewContactNotFoundError(id)
	}
	delete(r.messages, id)
	return nil
}

var _ contact.Repository = (*MockContactRepository)(nil)
