// Package contact 联系表单应用服务：公开提交，管理员查看与删除
package contact

import (
	"context"
	"time"

	"restaurant/domain/contact"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

type CreateRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=120"`
	Subject string `json:"subject" binding:"required,max=150"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ListQuery struct {
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ApplicationService struct {
	contacts contact.Repository
}

func NewApplicationService(contacts contact.Repository) *ApplicationService {
	return &ApplicationService{contacts: contacts}
}

func (s *ApplicationService) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	m, err := contact.New(contact.Form{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Save(ctx, m); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Contact message received",
		zap.String("contact_id", m.ID()),
		zap.String("subject", m.Subject()),
	)
	return toResponse(m), nil
}

// List 默认按 createdAt 倒序
func (s *ApplicationService) List(ctx context.Context, q ListQuery) ([]*Response, int64, shared.Page, error) {
	page := shared.NewPage(q.Page, q.Limit)
	messages, total, err := s.contacts.List(ctx, contact.ListCriteria{
		SortBy:    contact.ParseSortField(q.SortBy),
		SortOrder: shared.ParseSortOrder(q.SortOrder, shared.SortDesc),
		Page:      page,
	})
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*Response, len(messages))
	for i, m := range messages {
		responses[i] = toResponse(m)
	}
	return responses, total, page, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*Response, error) {
	m, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(m), nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.contacts.Remove(ctx, id)
}

func toResponse(m *contact.Message) *Response {
	return &Response{
		ID:        m.ID(),
		Name:      m.Name(),
		Email:     m.Email(),
		Subject:   m.Subject(),
		Message:   m.Body(),
		CreatedAt: m.CreatedAt(),
	}
}
