package errors

import (
	"errors"
	"fmt"

	"restaurant/domain/booking"
	"restaurant/domain/catalog"
	"restaurant/domain/contact"
	"restaurant/domain/notification"
	"restaurant/domain/order"
	"restaurant/domain/shared"
	"restaurant/domain/user"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeTooManyRequest   ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeInvalidState     ErrorCode = "INVALID_STATE"
	CodeConcurrentModify ErrorCode = "CONCURRENT_MODIFICATION"
	CodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"

	// 业务错误码
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeEmailExists          ErrorCode = "EMAIL_EXISTS"
	CodePhoneExists          ErrorCode = "PHONE_EXISTS"
	CodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken         ErrorCode = "INVALID_TOKEN"
	CodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	CodeLineNotFound         ErrorCode = "ORDER_LINE_NOT_FOUND"
	CodeCartEmpty            ErrorCode = "CART_EMPTY"
	CodeCartNotEditable      ErrorCode = "CART_NOT_EDITABLE"
	CodeInvalidOrderState    ErrorCode = "INVALID_ORDER_STATE"
	CodeProductNotFound      ErrorCode = "PRODUCT_NOT_FOUND"
	CodeCategoryNotFound     ErrorCode = "CATEGORY_NOT_FOUND"
	CodeCategoryExists       ErrorCode = "CATEGORY_EXISTS"
	CodeBookingNotFound      ErrorCode = "BOOKING_NOT_FOUND"
	CodeInvalidBookingState  ErrorCode = "INVALID_BOOKING_STATE"
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeContactNotFound      ErrorCode = "CONTACT_NOT_FOUND"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 常用错误构造函数

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func PayloadTooLarge(message string) *AppError {
	return New(CodePayloadTooLarge, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	// 如果不是 AppError，包装为内部错误
	return Wrap(err, CodeInternal, "internal server error")
}

type mapping struct {
	target error
	code   ErrorCode
}

// 先匹配子领域哨兵错误，保留更精确的错误码
var sentinelCodes = []mapping{
	{user.ErrUserNotFound, CodeUserNotFound},
	{user.ErrEmailAlreadyExists, CodeEmailExists},
	{user.ErrPhoneAlreadyExists, CodePhoneExists},
	{user.ErrInvalidCredentials, CodeInvalidCredentials},
	{user.ErrInvalidToken, CodeInvalidToken},

	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrLineNotFound, CodeLineNotFound},
	{order.ErrCartEmpty, CodeCartEmpty},
	{order.ErrCartNotEditable, CodeCartNotEditable},
	{order.ErrInvalidOrderStateTransition, CodeInvalidOrderState},

	{catalog.ErrProductNotFound, CodeProductNotFound},
	{catalog.ErrCategoryNotFound, CodeCategoryNotFound},
	{catalog.ErrCategoryExists, CodeCategoryExists},

	{booking.ErrBookingNotFound, CodeBookingNotFound},
	{booking.ErrInvalidTransition, CodeInvalidBookingState},

	{notification.ErrNotificationNotFound, CodeNotificationNotFound},
	{contact.ErrContactNotFound, CodeContactNotFound},

	{order.ErrConcurrentModification, CodeConcurrentModify},
	{user.ErrConcurrentModification, CodeConcurrentModify},
	{booking.ErrConcurrentModification, CodeConcurrentModify},
}

// 再按错误种类兜底
var kindCodes = []mapping{
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrInvalidState, CodeInvalidState},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
}

// FromDomainError 将领域错误映射为应用错误
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	// 已经是 AppError
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range sentinelCodes {
		if errors.Is(err, m.target) {
			return Wrap(err, m.code, domainMessage(err))
		}
	}
	for _, m := range kindCodes {
		if errors.Is(err, m.target) {
			return Wrap(err, m.code, domainMessage(err))
		}
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// domainMessage 优先使用 DomainError 自带的可读消息，避免把包装链拼进响应
func domainMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}
