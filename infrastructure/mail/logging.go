// Package mail 邮件投递；目前只把邮件写进日志
package mail

import (
	"context"

	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

// Message 一封待发送的邮件
type Message struct {
	To      string
	Subject string
	Body    string
}

// LoggingMailer 开发环境使用，正文只在 debug 级别输出
type LoggingMailer struct{}

func NewLoggingMailer() *LoggingMailer {
	return &LoggingMailer{}
}

func (m *LoggingMailer) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)
	log.Info("Mail queued",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	log.Debug("Mail body", zap.String("to", msg.To), zap.String("body", msg.Body))
	return nil
}
