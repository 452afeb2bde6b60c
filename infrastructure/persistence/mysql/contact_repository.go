package mysql

import (
	"context"

	"restaurant/domain/contact"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ContactRepository struct {
	conn
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{conn: conn{db: db}}
}

var contactSortColumns = map[contact.SortField]string{
	contact.SortByCreatedAt: "created_at",
	contact.SortByName:      "name",
	contact.SortByEmail:     "email",
}

func (r *ContactRepository) Save(ctx context.Context, m *contact.Message) error {
	return r.getDB(ctx).Create(po.FromContactDomain(m)).Error
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*contact.Message, error) {
	var row po.ContactPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, contact.NewContactNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ContactRepository) List(ctx context.Context, criteria contact.ListCriteria) ([]*contact.Message, int64, error) {
	column, ok := contactSortColumns[criteria.SortBy]
	if !ok {
		column = "created_at"
	}
	rows, total, err := paginate[po.ContactPO](r.getDB(ctx).Model(&po.ContactPO{}), criteria.Page, orderBy(column, criteria.SortOrder))
	if err != nil {
		return nil, 0, err
	}

	messages := make([]*contact.Message, len(rows))
	for i := range rows {
		messages[i] = rows[i].ToDomain()
	}
	return messages, total, nil
}

func (r *ContactRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ContactPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contact.NewContactNotFoundError(id)
	}
	return nil
}

var _ contact.Repository = (*ContactRepository)(nil)
