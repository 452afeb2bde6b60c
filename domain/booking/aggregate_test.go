package booking

import (
	"errors"
	"testing"
	"time"

	"restaurant/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	at := time.Date(2024, 7, 1, 19, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	b, err := NewBooking("user-1", 0, at, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPartySize, b.NumberOfPeople())
	assert.Equal(t, StatusPending, b.Status())
	assert.Equal(t, time.UTC, b.BookedAt().Location())
	assert.True(t, b.IsNew())

	events := b.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventBookingCreated, events[0].EventName())

	_, err = NewBooking("", 2, at, "")
	assert.True(t, errors.Is(err, ErrUserRequired))
	_, err = NewBooking("user-1", 101, at, "")
	assert.True(t, errors.Is(err, ErrInvalidPartySize))
	_, err = NewBooking("user-1", -1, at, "")
	assert.True(t, errors.Is(err, ErrInvalidPartySize))
	_, err = NewBooking("user-1", 2, time.Time{}, "")
	assert.True(t, errors.Is(err, ErrBookedAtRequired))
	_, err = NewBooking("user-1", 2, at, StatusCompleted)
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	confirmed, err := NewBooking("user-1", 4, at, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status())
}

func TestApplyTransitions(t *testing.T) {
	tests := []struct {
		name          string
		from, to      Status
		wantErr       error
		wantConfirmed bool
	}{
		{"confirm", StatusPending, StatusConfirmed, nil, true},
		{"reconfirm", StatusConfirmed, StatusConfirmed, nil, false},
		{"seat", StatusConfirmed, StatusSeated, nil, false},
		{"complete", StatusSeated, StatusCompleted, nil, false},
		{"no show", StatusPending, StatusNoShow, nil, false},
		{"restaurant cancels", StatusConfirmed, StatusCancelledByRestaurant, nil, false},
		{"skip to completed", StatusPending, StatusCompleted, ErrInvalidTransition, false},
		{"back to pending", StatusConfirmed, StatusPending, ErrInvalidTransition, false},
		{"reopen cancelled", StatusCancelledByCustomer, StatusConfirmed, ErrInvalidTransition, false},
		{"unknown", StatusPending, Status("LOST"), ErrInvalidStatus, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := RebuildFromDTO(ReconstructionDTO{ID: "b1", UserID: "u1", NumberOfPeople: 2, Status: tt.from, Version: 1})
			to := tt.to
			confirmed, err := b.Apply(Patch{Status: &to}, Transitions())
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, tt.from, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, b.Status())
			assert.Equal(t, tt.wantConfirmed, confirmed)
		})
	}
}

func TestApplyFields(t *testing.T) {
	b := RebuildFromDTO(ReconstructionDTO{ID: "b1", UserID: "u1", NumberOfPeople: 2, Status: StatusPending, Version: 1})

	_, err := b.Apply(Patch{}, Transitions())
	assert.True(t, errors.Is(err, ErrEmptyUpdate))

	zero := 0
	_, err = b.Apply(Patch{NumberOfPeople: &zero}, Transitions())
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, 2, b.NumberOfPeople())

	six := 6
	later := time.Date(2024, 7, 2, 20, 0, 0, 0, time.UTC)
	_, err = b.Apply(Patch{NumberOfPeople: &six, BookedAt: &later}, Transitions())
	require.NoError(t, err)
	assert.Equal(t, 6, b.NumberOfPeople())
	assert.True(t, later.Equal(b.BookedAt()))
	assert.Empty(t, b.PullEvents())

	confirmed := StatusConfirmed
	_, err = b.Apply(Patch{Status: &confirmed}, Transitions())
	require.NoError(t, err)
	events := b.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventBookingStatusChanged, events[0].EventName())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" no_show ")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)
	assert.True(t, s.IsTerminal())
	assert.False(t, StatusSeated.IsTerminal())

	_, err = ParseStatus("WAITING")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}
