package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"restaurant/domain/contact"
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGetDelete(t *testing.T) {
	svc := NewApplicationService(mocks.NewMockContactRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Name:    "  Lan  ",
		Email:   "Lan@Example.com",
		Subject: "Birthday party",
		Message: "Do you have a private room for 12?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lan", created.Name)
	assert.Equal(t, "lan@example.com", created.Email)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Message, got.Message)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, contact.ErrContactNotFound))
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestCreateValidation(t *testing.T) {
	svc := NewApplicationService(mocks.NewMockContactRepository())
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{Email: "a@b.co", Subject: "s", Message: "m"}},
		{"bad email", CreateRequest{Name: "n", Email: "not-an-email", Subject: "s", Message: "m"}},
		{"blank subject", CreateRequest{Name: "n", Email: "a@b.co", Subject: "   ", Message: "m"}},
		{"long message", CreateRequest{Name: "n", Email: "a@b.co", Subject: "s", Message: strings.Repeat("x", 5001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.True(t, errors.Is(err, contact.ErrInvalidContact))
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestListSortedByName(t *testing.T) {
	svc := NewApplicationService(mocks.NewMockContactRepository())
	ctx := context.Background()

	for _, name := range []string{"Minh", "An", "Hoa"} {
		_, err := svc.Create(ctx, CreateRequest{Name: name, Email: "guest@example.com", Subject: "Hi", Message: "Hello"})
		require.NoError(t, err)
	}

	items, total, page, err := svc.List(ctx, ListQuery{SortBy: "name", SortOrder: "asc", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, 2, page.Limit())
	require.Len(t, items, 2)
	assert.Equal(t, "An", items[0].Name)
	assert.Equal(t, "Hoa", items[1].Name)
}
