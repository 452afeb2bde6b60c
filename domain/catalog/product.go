/*
Package catalog 商品与分类

商品价格以最小货币单位的整数保存；订单行加入时复制名称和价格快照，
之后商品的修改不会影响历史订单。
*/
package catalog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"restaurant/domain/order"

	"github.com/google/uuid"
)

const maxNameLength = 50

// Product 商品实体
type Product struct {
	id          string
	name        string
	description string
	price       int64
	imageURL    string
	categoryID  string
	createdAt   time.Time
	updatedAt   time.Time
}

// ProductFields 创建或更新商品时的字段
type ProductFields struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	CategoryID  string
}

func NewProduct(fields ProductFields) (*Product, error) {
	if err := validateProduct(fields.Name, fields.Price); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now().UTC()
	return &Product{
		id:          id.String(),
		name:        strings.TrimSpace(fields.Name),
		description: fields.Description,
		price:       fields.Price,
		imageURL:    fields.ImageURL,
		categoryID:  fields.CategoryID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ProductPatch 部分更新，nil 字段保持不变
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	CategoryID  *string
}

func (p *Product) Apply(patch ProductPatch) error {
	name, price := p.name, p.price
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		price = *patch.Price
	}
	if err := validateProduct(name, price); err != nil {
		return err
	}

	p.name, p.price = name, price
	if patch.Description != nil {
		p.description = *patch.Description
	}
	if patch.ImageURL != nil {
		p.imageURL = *patch.ImageURL
	}
	if patch.CategoryID != nil {
		p.categoryID = *patch.CategoryID
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// SetImage 上传图片后更新地址
func (p *Product) SetImage(url string) {
	p.imageURL = url
	p.updatedAt = time.Now().UTC()
}

// Snapshot 订单行需要的快照字段
func (p *Product) Snapshot() order.ProductSnapshot {
	return order.ProductSnapshot{
		ProductID: p.id,
		Name:      p.name,
		Price:     p.price,
	}
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() int64         { return p.price }
func (p *Product) ImageURL() string     { return p.imageURL }
func (p *Product) CategoryID() string   { return p.categoryID }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// ProductDTO 仓储重建用
type ProductDTO struct {
	ID          string
	Name        string
	Description string
	Price       int64
	ImageURL    string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RebuildProduct(dto ProductDTO) *Product {
	return &Product{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		imageURL:    dto.ImageURL,
		categoryID:  dto.CategoryID,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

func validateProduct(name string, price int64) error {
	if err := validateName("product", name); err != nil {
		return err
	}
	if price <= 0 {
		return NewInvalidPriceError(price)
	}
	return nil
}

func validateName(entity, name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 || n > maxNameLength {
		return NewInvalidNameError(entity, name)
	}
	return nil
}
