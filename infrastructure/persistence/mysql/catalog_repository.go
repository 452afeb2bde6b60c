package mysql

import (
	"context"

	"restaurant/domain/catalog"
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ProductRepository struct {
	conn
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{conn: conn{db: db}}
}

var productSortColumns = map[catalog.ProductSortField]string{
	catalog.ProductSortByName:      "name",
	catalog.ProductSortByPrice:     "price",
	catalog.ProductSortByCreatedAt: "created_at",
}

// Save 商品没有并发写入场景，按主键 upsert
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return r.getDB(ctx).Save(po.FromProductDomain(p)).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var row po.ProductPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	result := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

func (r *ProductRepository) List(ctx context.Context, q catalog.ProductQuery) ([]*catalog.Product, int64, error) {
	query := r.getDB(ctx).Model(&po.ProductPO{})
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}

	column, ok := productSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	rows, total, err := paginate[po.ProductPO](query, q.Page, orderBy(column, q.SortOrder))
	if err != nil {
		return nil, 0, err
	}

	products := make([]*catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, total, nil
}

func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewProductNotFoundError(id)
	}
	return nil
}

type CategoryRepository struct {
	conn
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{conn: conn{db: db}}
}

func (r *CategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	if err := r.getDB(ctx).Save(po.FromCategoryDomain(c)).Error; err != nil {
		if isDuplicateKeyError(err) {
			return catalog.NewCategoryExistsError(c.Name())
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var row po.CategoryPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, catalog.NewCategoryNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Category, error) {
	result := make(map[string]*catalog.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []po.CategoryPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

func (r *CategoryRepository) List(ctx context.Context, page shared.Page) ([]*catalog.Category, int64, error) {
	rows, total, err := paginate[po.CategoryPO](r.getDB(ctx).Model(&po.CategoryPO{}), page, orderBy("name", shared.SortAsc))
	if err != nil {
		return nil, 0, err
	}

	categories := make([]*catalog.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, total, nil
}

func (r *CategoryRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CategoryPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewCategoryNotFoundError(id)
	}
	return nil
}

var (
	_ catalog.ProductRepository  = (*ProductRepository)(nil)
	_ catalog.CategoryRepository = (*CategoryRepository)(nil)
)
