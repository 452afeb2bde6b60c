package po

import (
	"time"

	"restaurant/domain/booking"

	"gorm.io/gorm"
)

type BookingPO struct {
	ID             string         `gorm:"primaryKey;size:36"`
	UserID         string         `gorm:"size:36;index;not null"`
	NumberOfPeople int            `gorm:"not null;default:1"`
	BookedAt       time.Time      `gorm:"not null;index"`
	Status         string         `gorm:"size:30;not null;default:PENDING"`
	Version        int            `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (BookingPO) TableName() string {
	return "bookings"
}

func FromBookingDomain(b *booking.Booking) *BookingPO {
	return &BookingPO{
		ID:             b.ID(),
		UserID:         b.UserID(),
		NumberOfPeople: b.NumberOfPeople(),
		BookedAt:       b.BookedAt(),
		Status:         string(b.Status()),
		Version:        b.Version(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func (po *BookingPO) ToDomain() *booking.Booking {
	return booking.RebuildFromDTO(booking.ReconstructionDTO{
		ID:             po.ID,
		UserID:         po.UserID,
		NumberOfPeople: po.NumberOfPeople,
		BookedAt:       po.BookedAt.UTC(),
		Status:         booking.Status(po.Status),
		Version:        po.Version,
		CreatedAt:      po.CreatedAt.UTC(),
		UpdatedAt:      po.UpdatedAt.UTC(),
	})
}
