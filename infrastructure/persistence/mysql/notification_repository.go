package mysql

import (
	"context"
	"time"

	"restaurant/domain/notification"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	conn
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{conn: conn{db: db}}
}

var notificationSortColumns = map[notification.SortField]string{
	notification.SortByCreatedAt: "created_at",
	notification.SortByReadAt:    "read_at",
	notification.SortByType:      "type",
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.getDB(ctx).Save(po.FromNotificationDomain(n)).Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	var row po.NotificationPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, notification.NewNotificationNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *NotificationRepository) List(ctx context.Context, criteria notification.ListCriteria) ([]*notification.Notification, int64, error) {
	query := r.getDB(ctx).Model(&po.NotificationPO{})
	f := criteria.Filter
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		query = query.Where("type = ?", string(f.Type))
	}
	if f.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}

	column, ok := notificationSortColumns[criteria.SortBy]
	if !ok {
		column = "created_at"
	}
	rows, total, err := paginate[po.NotificationPO](query, criteria.Page, orderBy(column, criteria.SortOrder))
	if err != nil {
		return nil, 0, err
	}

	items := make([]*notification.Notification, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, total, nil
}

func (r *NotificationRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.NotificationPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notification.NewNotificationNotFoundError(id)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error) {
	result := r.getDB(ctx).
		Model(&po.NotificationPO{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Updates(map[string]any{
			"read_at":    now.UTC(),
			"updated_at": now.UTC(),
		})
	return result.RowsAffected, result.Error
}

var _ notification.Repository = (*NotificationRepository)(nil)
