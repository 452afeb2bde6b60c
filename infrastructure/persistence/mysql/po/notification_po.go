package po

import (
	"time"

	"restaurant/domain/notification"

	"gorm.io/gorm"
)

// NotificationPO user_id 为 NULL 表示广播
type NotificationPO struct {
	ID        string  `gorm:"primaryKey;size:36"`
	UserID    *string `gorm:"size:36;index"`
	Type      string  `gorm:"size:40;not null;index"`
	Message   string  `gorm:"size:1000;not null"`
	ReadAt    *time.Time
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (NotificationPO) TableName() string {
	return "notifications"
}

func FromNotificationDomain(n *notification.Notification) *NotificationPO {
	return &NotificationPO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.Type()),
		Message:   n.Message(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
		UpdatedAt: n.UpdatedAt(),
	}
}

func (po *NotificationPO) ToDomain() *notification.Notification {
	return notification.Rebuild(notification.DTO{
		ID:        po.ID,
		UserID:    po.UserID,
		Type:      notification.Type(po.Type),
		Message:   po.Message,
		ReadAt:    utc(po.ReadAt),
		CreatedAt: po.CreatedAt.UTC(),
		UpdatedAt: po.UpdatedAt.UTC(),
	})
}
