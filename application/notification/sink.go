package notification

import (
	"context"

	"restaurant/domain/notification"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// SinkAdapter 把应用服务适配为生命周期代码使用的 notification.Sink
type SinkAdapter struct {
	service *ApplicationService
}

func NewSinkAdapter(service *ApplicationService) *SinkAdapter {
	return &SinkAdapter{service: service}
}

func (a *SinkAdapter) Notify(ctx context.Context, draft notification.Draft) error {
	_, err := a.service.create(ctx, draft)
	return err
}

// Notify 尽力写一条通知：sink 为 nil 或写入失败时只记录日志，从不返回错误
func Notify(ctx context.Context, sink notification.Sink, draft notification.Draft) {
	if sink == nil {
		return
	}

	fields := []zap.Field{zap.String("type", string(draft.Type))}
	if draft.UserID != nil {
		fields = append(fields, zap.String("user_id", *draft.UserID))
	}

	if err := sink.Notify(ctx, draft); err != nil {
		logger.FromContext(ctx).Warn("Failed to write notification", append(fields, zap.Error(err))...)
		return
	}
	logger.FromContext(ctx).Debug("Notification written", fields...)
}

var _ notification.Sink = (*SinkAdapter)(nil)
