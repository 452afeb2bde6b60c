package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/domain/user"
	"restaurant/infrastructure/mail"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// TokenIssuer 签发访问令牌
type TokenIssuer interface {
	Issue(userID string, role user.Role) (string, time.Time, error)
}

// OneTimeTokens 邮箱验证码与重置密码令牌
type OneTimeTokens interface {
	IssueVerification(ctx context.Context, userID string) (string, error)
	ConsumeVerification(ctx context.Context, code string) (string, bool, error)
	IssueReset(ctx context.Context, userID, email string) (string, error)
	LookupReset(ctx context.Context, token string) (userID, email string, ok bool, err error)
	RevokeReset(ctx context.Context, token string) error
}

type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// AuthDependencies 认证服务依赖
type AuthDependencies struct {
	Users      user.Repository
	Orders     order.Repository
	Lines      order.LineRepository
	Hasher     user.PasswordHasher
	Tokens     TokenIssuer
	OneTime    OneTimeTokens
	Mailer     Mailer
	UnitOfWork shared.UnitOfWorkFactory
	BaseURL    string
}

type AuthService struct {
	deps          AuthDependencies
	domainService *user.DomainService
}

func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		deps:          deps,
		domainService: user.NewDomainService(deps.Users),
	}
}

// Register 注册普通用户并发送邮箱验证码；发信失败不影响注册结果
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	var u *user.User
	uow := s.deps.UnitOfWork.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.domainService.EnsureUnique(ctx, req.Email, req.Phone, ""); err != nil {
			return err
		}

		var err error
		u, err = user.NewUser(user.Registration{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
			ImageURL: req.ImageURL,
			Role:     string(user.RoleUser),
		}, s.deps.Hasher)
		if err != nil {
			return err
		}
		if err := s.deps.Users.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterNew(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendVerification(ctx, u)
	return toResponse(u), nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *user.User) {
	log := logger.FromContext(ctx).With(zap.String("user_id", u.ID()))

	code, err := s.deps.OneTime.IssueVerification(ctx, u.ID())
	if err != nil {
		log.Warn("Failed to issue verification code", zap.Error(err))
		return
	}
	msg := mail.Message{
		To:      u.Email().Value(),
		Subject: "Email Verification",
		Body: fmt.Sprintf("Hello %s, your verification code is %s. Or open %s/email/verify/%s",
			u.Name(), code, s.deps.BaseURL, code),
	}
	if err := s.deps.Mailer.Send(ctx, msg); err != nil {
		log.Warn("Failed to send verification mail", zap.Error(err))
	}
}

// Login 校验密码并签发令牌，同时确保购物车和收藏夹存在
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.deps.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CheckPassword(req.Password, s.deps.Hasher) {
		return nil, user.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.deps.Tokens.Issue(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        PrincipalView{ID: u.ID(), Name: u.Name(), Role: string(u.Role())},
		Cart:        s.ensureSingleton(ctx, u.ID(), order.RoleCart),
		Favourites:  s.ensureSingleton(ctx, u.ID(), order.RoleFavourites),
	}, nil
}

// ensureSingleton 失败只记录日志，返回 nil
func (s *AuthService) ensureSingleton(ctx context.Context, userID string, role order.Role) *SingletonView {
	log := logger.FromContext(ctx).With(zap.String("user_id", userID), zap.String("role", string(role)))

	candidate, err := order.NewSingleton(userID, role)
	if err != nil {
		log.Error("Failed to build singleton order", zap.Error(err))
		return nil
	}
	o, err := s.deps.Orders.GetOrCreateSingleton(ctx, candidate)
	if err != nil {
		log.Error("Failed to ensure singleton order", zap.Error(err))
		return nil
	}
	lines, err := s.deps.Lines.FindByOrderID(ctx, o.ID())
	if err != nil {
		log.Error("Failed to load singleton lines", zap.Error(err))
		return nil
	}

	view := &SingletonView{ID: o.ID(), Items: make([]*LineView, len(lines))}
	for i, l := range lines {
		view.Items[i] = &LineView{
			ID:        l.ID(),
			ProductID: l.ProductID(),
			Name:      l.NameSnapshot(),
			Price:     l.PriceSnapshot(),
			Quantity:  l.Quantity(),
		}
	}
	return view
}

// VerifyEmail 验证码一次性使用
func (s *AuthService) VerifyEmail(ctx context.Context, code string) error {
	userID, ok, err := s.deps.OneTime.ConsumeVerification(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return user.NewInvalidTokenError()
	}

	uow := s.deps.UnitOfWork.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.deps.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		u.VerifyEmail()
		if err := s.deps.Users.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterDirty(u)
		return nil
	})
}

// ForgotPassword 无论邮箱是否存在都成功返回
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.deps.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		logger.FromContext(ctx).Debug("Password reset requested for unknown email")
		return nil
	}

	token, err := s.deps.OneTime.IssueReset(ctx, u.ID(), u.Email().Value())
	if err != nil {
		return err
	}
	msg := mail.Message{
		To:      u.Email().Value(),
		Subject: "Password Reset",
		Body: fmt.Sprintf("Hello %s, your password reset token is %s. Or open %s/password/reset/%s",
			u.Name(), token, s.deps.BaseURL, token),
	}
	if err := s.deps.Mailer.Send(ctx, msg); err != nil {
		logger.FromContext(ctx).Warn("Failed to send reset mail", zap.String("user_id", u.ID()), zap.Error(err))
	}
	return nil
}

// ResetPassword 令牌中的邮箱必须与用户当前邮箱一致；成功或上下文不符时令牌作废
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	userID, email, ok, err := s.deps.OneTime.LookupReset(ctx, req.Token)
	if err != nil {
		return err
	}
	if !ok {
		return user.NewInvalidTokenError()
	}

	u, err := s.deps.Users.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return err
	}
	if u == nil || u.Email().Value() != email {
		s.revoke(ctx, req.Token)
		return user.NewInvalidTokenError()
	}

	uow := s.deps.UnitOfWork.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := u.ResetPassword(req.NewPassword, s.deps.Hasher); err != nil {
			return err
		}
		if err := s.deps.Users.Save(ctx, u); err != nil {
			return err
		}
		uow.RegisterDirty(u)
		return nil
	})
	if err != nil {
		return err
	}
	s.revoke(ctx, req.Token)
	return nil
}

func (s *AuthService) revoke(ctx context.Context, token string) {
	if err := s.deps.OneTime.RevokeReset(ctx, token); err != nil {
		logger.FromContext(ctx).Warn("Failed to revoke reset token", zap.Error(err))
	}
}
