// Package contact 访客留言
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"restaurant/domain/shared"

	"github.com/google/uuid"
)

var (
	ErrContactNotFound = errors.New("contact message not found")
	ErrInvalidContact  = errors.New("invalid contact message")
)

func NewContactNotFoundError(id string) error {
	return shared.NewError(ErrContactNotFound, shared.ErrNotFound, "contact", "", "Contact not found: "+id)
}

func newInvalidFieldError(field string, max int) error {
	return shared.NewError(ErrInvalidContact, shared.ErrInvalidInput, "contact", field,
		fmt.Sprintf("%s is required and must be at most %d characters", field, max))
}

// Message 联系表单
type Message struct {
	id        string
	name      string
	email     string
	subject   string
	body      string
	createdAt time.Time
}

type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func New(f Form) (*Message, error) {
	name, err := requireText("name", f.Name, 100)
	if err != nil {
		return nil, err
	}
	email, err := requireText("email", f.Email, 120)
	if err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, newInvalidFieldError("email", 120)
	}
	subject, err := requireText("subject", f.Subject, 150)
	if err != nil {
		return nil, err
	}
	body, err := requireText("message", f.Message, 5000)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact ID: %w", err)
	}
	return &Message{
		id:        id.String(),
		name:      name,
		email:     strings.ToLower(email),
		subject:   subject,
		body:      body,
		createdAt: time.Now().UTC(),
	}, nil
}

func (m *Message) ID() string           { return m.id }
func (m *Message) Name() string         { return m.name }
func (m *Message) Email() string        { return m.email }
func (m *Message) Subject() string      { return m.subject }
func (m *Message) Body() string         { return m.body }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

type DTO struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

func Rebuild(dto DTO) *Message {
	return &Message{
		id:        dto.ID,
		name:      dto.Name,
		email:     dto.Email,
		subject:   dto.Subject,
		body:      dto.Body,
		createdAt: dto.CreatedAt,
	}
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByName      SortField = "name"
	SortByEmail     SortField = "email"
)

func ParseSortField(s string) SortField {
	switch f := SortField(s); f {
	case SortByCreatedAt, SortByName, SortByEmail:
		return f
	default:
		return SortByCreatedAt
	}
}

type ListCriteria struct {
	SortBy    SortField
	SortOrder shared.SortOrder
	Page      shared.Page
}

// Repository 留言仓储
type Repository interface {
	Save(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, criteria ListCriteria) ([]*Message, int64, error)
	Remove(ctx context.Context, id string) error
}

func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || utf8.RuneCountInString(value) > max {
		return "", newInvalidFieldError(field, max)
	}
	return value, nil
}
