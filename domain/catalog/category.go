package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category 商品分类，名称唯一
type Category struct {
	id          string
	name        string
	description string
	imageURL    string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCategory(name, description, imageURL string) (*Category, error) {
	if err := validateName("category", name); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category ID: %w", err)
	}

	now := time.Now().UTC()
	return &Category{
		id:          id.String(),
		name:        strings.TrimSpace(name),
		description: description,
		imageURL:    imageURL,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// CategoryPatch 部分更新
type CategoryPatch struct {
	Name        *string
	Description *string
	ImageURL    *string
}

func (c *Category) Apply(patch CategoryPatch) error {
	if patch.Name != nil {
		if err := validateName("category", *patch.Name); err != nil {
			return err
		}
		c.name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		c.description = *patch.Description
	}
	if patch.ImageURL != nil {
		c.imageURL = *patch.ImageURL
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

func (c *Category) ID() string           { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) ImageURL() string     { return c.imageURL }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// CategoryDTO 仓储重建用
type CategoryDTO struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RebuildCategory(dto CategoryDTO) *Category {
	return &Category{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		imageURL:    dto.ImageURL,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}
