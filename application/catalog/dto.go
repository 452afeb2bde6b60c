package catalog

import "time"

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	CategoryID string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=1000"`
	Price       int64  `json:"price" binding:"required,min=1"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,max=255"`
	CategoryID  string `json:"categoryId"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Price       *int64  `json:"price" binding:"omitempty,min=1"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,max=255"`
	CategoryID  *string `json:"categoryId"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CategoryID  string    `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=1000"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,max=255"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,max=255"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
