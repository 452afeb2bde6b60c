package booking

import "time"

// ListQuery 预订列表查询参数
type ListQuery struct {
	Status         string
	UserID         string
	NumberOfPeople int
	SortBy         string
	SortOrder      string
	Page           int
	Limit          int
}

// CreateRequest 创建预订；numberOfPeople 缺省为 1，status 缺省为 PENDING
// 普通用户的 userId 由控制器设置为本人
type CreateRequest struct {
	UserID         string    `json:"userId"`
	NumberOfPeople int       `json:"numberOfPeople" binding:"omitempty,min=1,max=100"`
	BookedAt       time.Time `json:"bookedAt" binding:"required"`
	Status         string    `json:"status" binding:"omitempty,booking_status"`
}

// UpdateRequest 部分更新
type UpdateRequest struct {
	NumberOfPeople *int       `json:"numberOfPeople" binding:"omitempty,min=1,max=100"`
	BookedAt       *time.Time `json:"bookedAt"`
	Status         *string    `json:"status" binding:"omitempty,booking_status"`
}

// Response 预订返回模型
type Response struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	NumberOfPeople int       `json:"numberOfPeople"`
	BookedAt       time.Time `json:"bookedAt"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
