package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	OrderStatus   string `validate:"omitempty,order_status"`
	BookingStatus string `validate:"omitempty,booking_status"`
	Type          string `validate:"omitempty,notification_type"`
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	assert.NoError(t, v.Struct(payload{}))
	assert.NoError(t, v.Struct(payload{OrderStatus: "delivering", BookingStatus: "NO_SHOW", Type: "order_ready"}))

	assert.Error(t, v.Struct(payload{OrderStatus: "LOST"}))
	assert.Error(t, v.Struct(payload{BookingStatus: "WAITING"}))
	assert.Error(t, v.Struct(payload{Type: "BIRTHDAY"}))
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
