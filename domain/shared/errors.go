/*
Package shared - 领域层共享错误定义

设计原则:
1. 领域层定义哨兵错误(sentinel errors)，用于 errors.Is() 类型安全判断
2. 各子领域的哨兵错误同时链接到这里的错误种类（NotFound、InvalidInput...），
   API 层可以只按种类映射状态码
3. DomainError 在创建时捕获堆栈，但延迟格式化（按需打印）
4. 领域错误不包含 HTTP 状态码等传输层概念
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// 错误种类
var (
	// ErrNotFound 引用的实体不存在
	ErrNotFound = errors.New("not found")

	// ErrConflict 资源冲突（唯一约束、状态已不允许该操作）
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput 无效输入（数量非正、空购物车结算等）
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState 状态转换被转换表拒绝
	ErrInvalidState = errors.New("invalid state transition")

	// ErrUnauthorized 未认证
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden 已认证但无权限
	ErrForbidden = errors.New("forbidden")
)

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err 底层哨兵错误，用于 errors.Is() 判断
	Err error

	// Kind 错误种类（ErrNotFound 等）；为 nil 时仅 Err 参与错误链
	Kind error

	// Entity 发生错误的实体名称（如 "order", "booking"）
	Entity string

	// Message 人类可读的错误描述
	Message string

	// Field 可选：发生错误的字段名（用于校验错误）
	Field string

	stack []uintptr
}

// Error 实现 error 接口
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap 同时暴露哨兵错误与错误种类
func (e *DomainError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Kind != nil && e.Kind != e.Err {
		errs = append(errs, e.Kind)
	}
	return errs
}

// Stack 按需格式化堆栈（只在打印日志时调用）
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// NewError 创建带堆栈的子领域错误，供各子领域的构造函数使用
// 堆栈从调用子领域构造函数的位置开始
func NewError(sentinel, kind error, entity, field, message string) error {
	return &DomainError{
		Err:     sentinel,
		Kind:    kind,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(4),
	}
}

// CaptureStack 捕获当前调用栈（导出供子领域包使用）
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧为字符串切片，过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// NewNotFoundError 创建"未找到"领域错误
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError 创建"冲突"领域错误
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError 创建"校验失败"领域错误
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewInvalidStateError 创建"状态转换被拒绝"领域错误
func NewInvalidStateError(entity, from, to string) error {
	return &DomainError{
		Err:     ErrInvalidState,
		Entity:  entity,
		Field:   "status",
		Message: fmt.Sprintf("cannot transition %s from %s to %s", entity, from, to),
		stack:   CaptureStack(3),
	}
}

// NewUnauthorizedError 创建"未认证"领域错误
func NewUnauthorizedError(reason string) error {
	return &DomainError{
		Err:     ErrUnauthorized,
		Entity:  "auth",
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError 创建"禁止访问"领域错误
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker 可提供堆栈的错误接口，API 层用它提取"错误发生点"
type Stacker interface {
	Stack() []string
}
