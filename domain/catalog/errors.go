package catalog

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("name must be 1..50 characters")
	ErrInvalidPrice     = errors.New("price must be a positive integer")
	ErrCategoryExists   = errors.New("category name already exists")
)

func NewProductNotFoundError(id string) error {
	return shared.NewError(ErrProductNotFound, shared.ErrNotFound, "product", "", "Product not found: "+id)
}

func NewCategoryNotFoundError(id string) error {
	return shared.NewError(ErrCategoryNotFound, shared.ErrNotFound, "category", "", "Category not found: "+id)
}

func NewInvalidNameError(entity, name string) error {
	return shared.NewError(ErrInvalidName, shared.ErrInvalidInput, entity, "name",
		fmt.Sprintf("%s name must be 1..%d characters, got %q", entity, maxNameLength, name))
}

func NewInvalidPriceError(price int64) error {
	return shared.NewError(ErrInvalidPrice, shared.ErrInvalidInput, "product", "price",
		fmt.Sprintf("price must be a positive integer, got %d", price))
}

func NewCategoryExistsError(name string) error {
	return shared.NewError(ErrCategoryExists, shared.ErrConflict, "category", "name",
		"category name already exists: "+name)
}
