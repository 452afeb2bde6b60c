/*
Package user 用户与认证应用服务
*/
package user

import (
	"context"
	"io"

	"restaurant/domain/shared"
	"restaurant/domain/user"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// ImageStorage 头像存储
type ImageStorage interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// ApplicationService 用户资料管理
type ApplicationService struct {
	users         user.Repository
	domainService *user.DomainService
	hasher        user.PasswordHasher
	uowFactory    shared.UnitOfWorkFactory
	images        ImageStorage
}

func NewApplicationService(
	users user.Repository,
	hasher user.PasswordHasher,
	uowFactory shared.UnitOfWorkFactory,
	images ImageStorage,
) *ApplicationService {
	return &ApplicationService{
		users:         users,
		domainService: user.NewDomainService(users),
		hasher:        hasher,
		uowFactory:    uowFactory,
		images:        images,
	}
}

func (s *ApplicationService) List(ctx context.Context, q ListQuery) ([]*Response, int64, shared.Page, error) {
	page := shared.NewPage(q.Page, q.Limit)
	users, total, err := s.users.List(ctx, user.ListCriteria{
		Spec:      user.NewListingSpecification(q.Role, q.Email, q.Search),
		SortBy:    user.ParseSortField(q.SortBy),
		SortOrder: shared.ParseSortOrder(q.SortOrder, shared.SortDesc),
		Page:      page,
	})
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*Response, len(users))
	for i, u := range users {
		responses[i] = toResponse(u)
	}
	return responses, total, page, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*Response, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

// Update 邮箱、电话先做唯一性检查，数据库唯一索引兜底
func (s *ApplicationService) Update(ctx context.Context, id string, req UpdateRequest) (*Response, error) {
	if req.IsEmpty() {
		return nil, shared.NewError(nil, shared.ErrInvalidInput, "user", "", "at least one field must be provided")
	}

	var u *user.User
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if u, err = s.users.FindByID(ctx, id); err != nil {
			return err
		}
		if err := s.domainService.EnsureUnique(ctx, deref(req.Email), deref(req.Phone), id); err != nil {
			return err
		}
		patch := user.Patch{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
			ImageURL: req.ImageURL,
			Role:     req.Role,
		}
		if err := u.Apply(patch, s.hasher); err != nil {
			return err
		}
		if err := s.users.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterDirty(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.users.Remove(ctx, id)
}

// UploadImage 保存头像并更新 imageUrl，旧头像尽力删除
func (s *ApplicationService) UploadImage(ctx context.Context, id, filename string, r io.Reader) (*Response, error) {
	if s.images == nil {
		return nil, shared.NewError(nil, shared.ErrInvalidInput, "user", "image", "Image uploads are disabled")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, "users", filename, r)
	if err != nil {
		return nil, err
	}
	previous := u.ImageURL()
	u.SetImage(url)
	if err := s.users.Save(ctx, u); err != nil {
		_ = s.images.Remove(ctx, url)
		return nil, err
	}
	if previous != "" {
		if err := s.images.Remove(ctx, previous); err != nil {
			logger.FromContext(ctx).Debug("Previous image not removed", zap.String("url", previous), zap.Error(err))
		}
	}
	return toResponse(u), nil
}

func toResponse(u *user.User) *Response {
	return &Response{
		ID:            u.ID(),
		Name:          u.Name(),
		Email:         u.Email().Value(),
		Phone:         u.Phone().Value(),
		ImageURL:      u.ImageURL(),
		Role:          string(u.Role()),
		EmailVerified: u.EmailVerified(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
