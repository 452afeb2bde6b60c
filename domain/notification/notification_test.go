package notification

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n, err := New(Draft{Type: "new_order", Message: " New order #42 "})
	require.NoError(t, err)
	assert.Equal(t, TypeNewOrder, n.Type())
	assert.Equal(t, "New order #42", n.Message())
	assert.True(t, n.IsBroadcast())
	assert.Nil(t, n.ReadAt())

	empty := ""
	n, err = New(Draft{UserID: &empty, Type: TypeOrderReady, Message: "ready"})
	require.NoError(t, err)
	assert.True(t, n.IsBroadcast())

	userID := "user-1"
	n, err = New(Draft{UserID: &userID, Type: TypeOrderReady, Message: "ready"})
	require.NoError(t, err)
	userID = "changed"
	require.NotNil(t, n.UserID())
	assert.Equal(t, "user-1", *n.UserID())

	_, err = New(Draft{Type: "BIRTHDAY", Message: "x"})
	assert.True(t, errors.Is(err, ErrInvalidType))

	_, err = New(Draft{Type: TypeOrderReady, Message: strings.Repeat("x", MaxMessageLength+1)})
	assert.True(t, errors.Is(err, ErrInvalidMessage))
}

func TestMarkRead(t *testing.T) {
	n, err := New(Draft{Type: TypeNewReservation, Message: "table"})
	require.NoError(t, err)

	first := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	assert.True(t, n.MarkRead(first))
	assert.False(t, n.MarkRead(first.Add(time.Hour)))
	assert.True(t, first.Equal(*n.ReadAt()))
}

func TestApply(t *testing.T) {
	n, err := New(Draft{Type: TypeNewReservation, Message: "table"})
	require.NoError(t, err)

	assert.True(t, errors.Is(n.Apply(Patch{}), ErrEmptyUpdate))

	blank := "  "
	assert.True(t, errors.Is(n.Apply(Patch{Message: &blank}), ErrInvalidMessage))
	assert.Equal(t, "table", n.Message())

	at := time.Now()
	require.NoError(t, n.Apply(Patch{ReadAt: &at}))
	require.NotNil(t, n.ReadAt())

	require.NoError(t, n.Apply(Patch{ClearRead: true, ReadAt: &at}))
	assert.Nil(t, n.ReadAt())
}
