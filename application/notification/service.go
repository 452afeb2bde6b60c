/*
Package notification 通知应用服务

除了通知资源本身的增删改查，还通过 SinkAdapter 为订单、预订的生命周期
代码提供写通知的出口。生命周期代码只通过 Notify 调用它，失败只记录日志。
*/
package notification

import (
	"context"
	"time"

	"restaurant/domain/notification"
	"restaurant/domain/shared"
)

// ApplicationService 通知应用服务
type ApplicationService struct {
	repo notification.Repository
	now  func() time.Time
}

func NewApplicationService(repo notification.Repository) *ApplicationService {
	return &ApplicationService{
		repo: repo,
		now:  time.Now,
	}
}

// List 分页查询，返回当前页、总数和实际使用的分页参数
func (s *ApplicationService) List(ctx context.Context, q ListQuery) ([]*Response, int64, shared.Page, error) {
	page := shared.NewPage(q.Page, q.Limit)

	var typ notification.Type
	if q.Type != "" {
		t, err := notification.ParseType(q.Type)
		if err != nil {
			return nil, 0, page, err
		}
		typ = t
	}

	items, total, err := s.repo.List(ctx, notification.ListCriteria{
		Filter: notification.Filter{
			UserID:     q.UserID,
			Type:       typ,
			UnreadOnly: q.Unread,
		},
		SortBy:    notification.ParseSortField(q.SortBy),
		SortOrder: shared.ParseSortOrder(q.SortOrder, shared.SortDesc),
		Page:      page,
	})
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*Response, len(items))
	for i, n := range items {
		responses[i] = toResponse(n)
	}
	return responses, total, page, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*Response, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(n), nil
}

func (s *ApplicationService) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	typ, err := notification.ParseType(req.Type)
	if err != nil {
		return nil, err
	}
	n, err := s.create(ctx, notification.Draft{UserID: req.UserID, Type: typ, Message: req.Message})
	if err != nil {
		return nil, err
	}
	return toResponse(n), nil
}

func (s *ApplicationService) create(ctx context.Context, draft notification.Draft) (*notification.Notification, error) {
	n, err := notification.New(draft)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ApplicationService) Update(ctx context.Context, id string, req UpdateRequest) (*Response, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := n.Apply(notification.Patch{Message: req.Message, ReadAt: req.ReadAt, ClearRead: req.Unread}); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return toResponse(n), nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}

// MarkRead 幂等：已读的通知保持原来的已读时间
func (s *ApplicationService) MarkRead(ctx context.Context, id string) (*Response, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.MarkRead(s.now()) {
		if err := s.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	return toResponse(n), nil
}

func (s *ApplicationService) MarkAllRead(ctx context.Context, userID string) (*MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{
		Message: "All notifications marked as read",
		Updated: updated,
	}, nil
}

func toResponse(n *notification.Notification) *Response {
	return &Response{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.Type()),
		Message:   n.Message(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
		UpdatedAt: n.UpdatedAt(),
	}
}
