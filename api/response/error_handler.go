/*
Package response - API 层统一响应处理

设计原则:
1. HTTP 状态码映射放在 API 层，不污染领域层和应用层
2. 错误响应不暴露内部细节（堆栈、内部错误消息等）
3. 所有响应携带 RequestID 用于日志追踪
4. 内部错误统一返回 "internal server error"，真实错误只记录日志

堆栈提取策略:
1. 优先从领域错误（实现 shared.Stacker 接口）提取"错误发生点"堆栈
2. 如果错误不带堆栈，则在此处捕获"错误处理点"堆栈作为兜底

响应格式:

	成功: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	失败: { success: false, error: "ERROR_CODE", message: "用户可见消息", code: 4xx/5xx, request_id: "..." }
*/
package response

import (
	stdErrors "errors"
	"net/http"
	"runtime"

	"restaurant/domain/shared"
	"restaurant/pkg/errors"
	"restaurant/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:         http.StatusInternalServerError,
	errors.CodeBadRequest:       http.StatusBadRequest,
	errors.CodeUnauthorized:     http.StatusUnauthorized,
	errors.CodeNotFound:         http.StatusNotFound,
	errors.CodeConflict:         http.StatusConflict,
	errors.CodeForbidden:        http.StatusForbidden,
	errors.CodeValidation:       http.StatusBadRequest,
	errors.CodeTooManyRequest:   http.StatusTooManyRequests,
	errors.CodeInvalidState:     http.StatusConflict,
	errors.CodeConcurrentModify: http.StatusConflict,
	errors.CodePayloadTooLarge:  http.StatusRequestEntityTooLarge,

	errors.CodeOrderNotFound:     http.StatusNotFound,
	errors.CodeLineNotFound:      http.StatusNotFound,
	errors.CodeCartEmpty:         http.StatusBadRequest,
	errors.CodeCartNotEditable:   http.StatusConflict,
	errors.CodeInvalidOrderState: http.StatusUnprocessableEntity,

	errors.CodeUserNotFound:       http.StatusNotFound,
	errors.CodeEmailExists:        http.StatusConflict,
	errors.CodePhoneExists:        http.StatusConflict,
	errors.CodeInvalidCredentials: http.StatusUnauthorized,
	errors.CodeInvalidToken:       http.StatusBadRequest,

	errors.CodeProductNotFound:  http.StatusNotFound,
	errors.CodeCategoryNotFound: http.StatusNotFound,
	errors.CodeCategoryExists:   http.StatusConflict,

	errors.CodeBookingNotFound:     http.StatusNotFound,
	errors.CodeInvalidBookingState: http.StatusUnprocessableEntity,

	errors.CodeNotificationNotFound: http.StatusNotFound,
	errors.CodeContactNotFound:      http.StatusNotFound,
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

func GetRequestID(c *gin.Context) string {
	return getRequestID(c)
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// HandleError 处理参数绑定等框架层错误。
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := getRequestID(c)

	logger.Warn(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	errorCode := errors.CodeBadRequest
	if code == http.StatusUnauthorized {
		errorCode = errors.CodeUnauthorized
	}
	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errorCode),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError 按应用错误码自动映射 HTTP 状态码。
func HandleAppError(c *gin.Context, err error) {
	requestID := getRequestID(c)
	appErr := errors.FromDomainError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)
	stack := extractStack(err)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", stack),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	if httpStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Message, fields...)
	} else {
		logger.Warn(appErr.Message, fields...)
	}

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return captureStack(4)
}
