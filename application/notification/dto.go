package notification

import "time"

// ListQuery 通知列表查询参数
type ListQuery struct {
	UserID    string
	Type      string
	Unread    bool
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// CreateRequest 管理员创建通知；userId 为空表示广播
type CreateRequest struct {
	UserID  *string `json:"userId"`
	Type    string  `json:"type" binding:"required,notification_type"`
	Message string  `json:"message" binding:"required,max=1000"`
}

// UpdateRequest 部分更新；unread=true 清除已读时间
type UpdateRequest struct {
	Message *string    `json:"message" binding:"omitempty,max=1000"`
	ReadAt  *time.Time `json:"readAt"`
	Unread  bool       `json:"unread"`
}

// Response 通知返回模型
type Response struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// MarkAllReadResponse 批量已读结果
type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}
