package mysql

import (
	"context"

	"restaurant/domain/booking"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type BookingRepository struct {
	conn
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{conn: conn{db: db}}
}

var bookingSortColumns = map[booking.SortField]string{
	booking.SortByBookedAt:       "booked_at",
	booking.SortByCreatedAt:      "created_at",
	booking.SortByStatus:         "status",
	booking.SortByNumberOfPeople: "number_of_people",
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		row := po.FromBookingDomain(b)

		if b.IsNew() {
			row.Version = 1
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			b.IncrementVersionForSave()
			return nil
		}

		expectedVersion := b.Version()
		result := tx.Model(&po.BookingPO{}).
			Where("id = ? AND version = ?", b.ID(), expectedVersion).
			Updates(map[string]any{
				"number_of_people": row.NumberOfPeople,
				"booked_at":        row.BookedAt,
				"status":           row.Status,
				"version":          expectedVersion + 1,
				"updated_at":       row.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.BookingPO{}).Where("id = ?", b.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return booking.NewBookingNotFoundError(b.ID())
			}
			return booking.NewConcurrentModificationError(b.ID())
		}

		b.IncrementVersionForSave()
		return nil
	})
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row po.BookingPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, booking.NewBookingNotFoundError(id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *BookingRepository) List(ctx context.Context, criteria booking.ListCriteria) ([]*booking.Booking, int64, error) {
	query := r.getDB(ctx).Model(&po.BookingPO{})
	f := criteria.Filter
	if f.Status != "" {
		query = query.Where("status = ?", string(f.Status))
	}
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.NumberOfPeople != 0 {
		query = query.Where("number_of_people = ?", f.NumberOfPeople)
	}

	column, ok := bookingSortColumns[criteria.SortBy]
	if !ok {
		column = "booked_at"
	}
	rows, total, err := paginate[po.BookingPO](query, criteria.Page, orderBy(column, criteria.SortOrder))
	if err != nil {
		return nil, 0, err
	}

	bookings := make([]*booking.Booking, len(rows))
	for i := range rows {
		bookings[i] = rows[i].ToDomain()
	}
	return bookings, total, nil
}

func (r *BookingRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.BookingPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return booking.NewBookingNotFoundError(id)
	}
	return nil
}

var _ booking.Repository = (*BookingRepository)(nil)
