package po

import (
	"time"

	"restaurant/domain/catalog"

	"gorm.io/gorm"
)

type ProductPO struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Name        string         `gorm:"size:50;not null"`
	Description string         `gorm:"type:text"`
	Price       int64          `gorm:"not null"`
	ImageURL    string         `gorm:"size:255"`
	CategoryID  string         `gorm:"size:36;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		ImageURL:    p.ImageURL(),
		CategoryID:  p.CategoryID(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (po *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildProduct(catalog.ProductDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Price:       po.Price,
		ImageURL:    po.ImageURL,
		CategoryID:  po.CategoryID,
		CreatedAt:   po.CreatedAt.UTC(),
		UpdatedAt:   po.UpdatedAt.UTC(),
	})
}

// CategoryPO 分类名称唯一（不含已删除行）
type CategoryPO struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Name        string         `gorm:"size:50;uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	ImageURL    string         `gorm:"size:255"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (CategoryPO) TableName() string {
	return "categories"
}

func FromCategoryDomain(c *catalog.Category) *CategoryPO {
	return &CategoryPO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		ImageURL:    c.ImageURL(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func (po *CategoryPO) ToDomain() *catalog.Category {
	return catalog.RebuildCategory(catalog.CategoryDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		ImageURL:    po.ImageURL,
		CreatedAt:   po.CreatedAt.UTC(),
		UpdatedAt:   po.UpdatedAt.UTC(),
	})
}
