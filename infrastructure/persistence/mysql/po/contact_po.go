package po

import (
	"time"

	"restaurant/domain/contact"

	"gorm.io/gorm"
)

type ContactPO struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Name      string         `gorm:"size:100;not null"`
	Email     string         `gorm:"size:120;not null"`
	Subject   string         `gorm:"size:150;not null"`
	Message   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ContactPO) TableName() string {
	return "contacts"
}

func FromContactDomain(m *contact.Message) *ContactPO {
	return &ContactPO{
		ID:        m.ID(),
		Name:      m.Name(),
		Email:     m.Email(),
		Subject:   m.Subject(),
		Message:   m.Body(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.CreatedAt(),
	}
}

func (po *ContactPO) ToDomain() *contact.Message {
	return contact.Rebuild(contact.DTO{
		ID:        po.ID,
		Name:      po.Name,
		Email:     po.Email,
		Subject:   po.Subject,
		Body:      po.Message,
		CreatedAt: po.CreatedAt.UTC(),
	})
}
