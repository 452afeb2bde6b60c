package order

import (
	"errors"
	"strings"
	"testing"
	"time"

	"restaurant/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCart(t *testing.T) *Order {
	t.Helper()
	cart, err := NewSingleton("user-1", RoleCart)
	require.NoError(t, err)
	return cart
}

func newLine(t *testing.T, orderID, productID string, price int64, qty int) *Line {
	t.Helper()
	l, err := NewLine(orderID, ProductSnapshot{ProductID: productID, Name: productID, Price: price}, qty)
	require.NoError(t, err)
	return l
}

func TestNewSingleton(t *testing.T) {
	cart := newCart(t)
	assert.Equal(t, StatusDraft, cart.Status())
	assert.Equal(t, RoleCart, cart.Role())
	assert.Equal(t, "user-1:CART", cart.SingletonKey())
	assert.False(t, cart.TotalPrice().Valid)

	fav, err := NewSingleton("user-1", RoleFavourites)
	require.NoError(t, err)
	assert.Equal(t, StatusFavourites, fav.Status())

	_, err = NewSingleton("user-1", RoleOrder)
	assert.True(t, errors.Is(err, ErrWrongRole))

	_, err = NewSingleton("", RoleCart)
	assert.True(t, errors.Is(err, ErrUserRequired))
}

func TestCheckout(t *testing.T) {
	cart := newCart(t)
	lines := []*Line{
		newLine(t, cart.ID(), "p1", 500, 2),
		newLine(t, cart.ID(), "p2", 300, 1),
	}

	total, err := cart.Checkout(lines)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1300).Equal(total))
	assert.Equal(t, StatusCreated, cart.Status())
	assert.Equal(t, RoleOrder, cart.Role())
	assert.Empty(t, cart.SingletonKey())
	assert.True(t, cart.TotalPrice().Decimal.Equal(total))

	events := cart.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCheckedOut, events[0].EventName())
}

func TestCheckoutEmpty(t *testing.T) {
	cart := newCart(t)
	_, err := cart.Checkout(nil)
	assert.True(t, errors.Is(err, ErrCartEmpty))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, StatusDraft, cart.Status())
}

func TestCheckoutRequiresCart(t *testing.T) {
	fav, err := NewSingleton("user-1", RoleFavourites)
	require.NoError(t, err)
	_, err = fav.Checkout([]*Line{newLine(t, fav.ID(), "p1", 100, 1)})
	assert.True(t, errors.Is(err, ErrWrongRole))

	cart := newCart(t)
	_, err = cart.Checkout([]*Line{newLine(t, "other", "p1", 100, 1)})
	assert.Error(t, err)
	assert.Equal(t, StatusDraft, cart.Status())
}

func TestClearAfterCheckoutConflicts(t *testing.T) {
	cart := newCart(t)
	require.NoError(t, cart.EnsureEditableCart())

	_, err := cart.Checkout([]*Line{newLine(t, cart.ID(), "p1", 100, 1)})
	require.NoError(t, err)

	err = cart.EnsureEditableCart()
	assert.True(t, errors.Is(err, ErrCartNotEditable))
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestLineQuantity(t *testing.T) {
	_, err := NewLine("o", ProductSnapshot{ProductID: "p"}, 0)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	l := newLine(t, "o", "p", 250, 2)
	require.NoError(t, l.Increase(3))
	assert.Equal(t, 5, l.Quantity())
	assert.Equal(t, int64(1250), l.Subtotal())

	assert.Error(t, l.Increase(-1))
	assert.Error(t, l.SetQuantity(MaxLineQuantity+1))
	assert.Equal(t, 5, l.Quantity())
	assert.True(t, l.IsNew())
}

func TestLineNameSnapshotTruncated(t *testing.T) {
	long := strings.Repeat("phở ", 20)
	l, err := NewLine("o", ProductSnapshot{ProductID: "p", Name: long, Price: 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, len([]rune(l.NameSnapshot())))
}

func TestApplyMilestones(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	strict := StrictTransitions()

	tests := []struct {
		name  string
		start Status
		patch func() Patch
		want  []Milestone
	}{
		{
			name:  "created to ready",
			start: StatusCreated,
			patch: func() Patch { s := StatusReady; return Patch{Status: &s} },
			want:  []Milestone{MilestoneReady},
		},
		{
			name:  "created to preparing",
			start: StatusCreated,
			patch: func() Patch { s := StatusPreparing; return Patch{Status: &s} },
			want:  []Milestone{MilestoneAccepted},
		},
		{
			name:  "ready to delivering",
			start: StatusReady,
			patch: func() Patch { s := StatusDelivering; return Patch{Status: &s} },
			want:  []Milestone{MilestoneOutForDelivery},
		},
		{
			name:  "delivering to received",
			start: StatusDelivering,
			patch: func() Patch { s := StatusReceived; return Patch{Status: &s} },
			want:  []Milestone{MilestoneDelivered},
		},
		{
			name:  "accepted at only",
			start: StatusCreated,
			patch: func() Patch { return Patch{AcceptedAt: &now} },
			want:  []Milestone{MilestoneAccepted},
		},
		{
			name:  "same status",
			start: StatusPreparing,
			patch: func() Patch { s := StatusPreparing; return Patch{Status: &s} },
			want:  nil,
		},
		{
			name:  "cancel",
			start: StatusReady,
			patch: func() Patch { s := StatusCanceled; return Patch{Status: &s} },
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder("user-1", CreateOptions{Status: tt.start})
			require.NoError(t, err)
			o.PullEvents()

			got, err := o.Apply(tt.patch(), strict, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyTimestampsAreWriteOnce(t *testing.T) {
	o, err := NewOrder("user-1", CreateOptions{})
	require.NoError(t, err)

	first := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	got, err := o.Apply(Patch{DeliveredAt: &first}, StrictTransitions(), first)
	require.NoError(t, err)
	assert.Equal(t, []Milestone{MilestoneDelivered}, got)

	second := first.Add(time.Hour)
	got, err = o.Apply(Patch{DeliveredAt: &second}, StrictTransitions(), second)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, first.Equal(*o.DeliveredAt()))
}

func TestApplyBackfillsReceived(t *testing.T) {
	o, err := NewOrder("user-1", CreateOptions{Status: StatusDelivering})
	require.NoError(t, err)

	now := time.Now()
	s := StatusReceived
	_, err = o.Apply(Patch{Status: &s}, StrictTransitions(), now)
	require.NoError(t, err)
	require.NotNil(t, o.DeliveredAt())
	require.NotNil(t, o.ReceivedAt())
}

func TestApplyRejections(t *testing.T) {
	o, err := NewOrder("user-1", CreateOptions{Status: StatusReceived})
	require.NoError(t, err)

	back := StatusCreated
	_, err = o.Apply(Patch{Status: &back}, StrictTransitions(), time.Now())
	assert.True(t, errors.Is(err, ErrInvalidOrderStateTransition))

	_, err = o.Apply(Patch{}, StrictTransitions(), time.Now())
	assert.True(t, errors.Is(err, ErrEmptyUpdate))

	draft := StatusDraft
	_, err = o.Apply(Patch{Status: &draft}, PermissiveTransitions(), time.Now())
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	zero := decimal.Zero
	_, err = o.Apply(Patch{TotalPrice: &zero}, StrictTransitions(), time.Now())
	assert.True(t, errors.Is(err, ErrInvalidTotalPrice))

	cart := newCart(t)
	ready := StatusReady
	_, err = cart.Apply(Patch{Status: &ready}, PermissiveTransitions(), time.Now())
	assert.True(t, errors.Is(err, ErrWrongRole))
}

func TestTransitionPolicies(t *testing.T) {
	strict := StrictTransitions()
	assert.True(t, strict.Allows(StatusCreated, StatusReady))
	assert.True(t, strict.Allows(StatusDelivering, StatusCanceled))
	assert.True(t, strict.Allows(StatusReady, StatusReady))
	assert.False(t, strict.Allows(StatusReady, StatusPreparing))
	assert.False(t, strict.Allows(StatusCanceled, StatusCreated))
	assert.False(t, strict.Allows(StatusReceived, StatusCanceled))

	permissive := PermissiveTransitions()
	assert.True(t, permissive.Allows(StatusReceived, StatusCreated))

	p, err := TransitionsFor("")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p.Name())

	p, err = TransitionsFor(PolicyPermissive)
	require.NoError(t, err)
	assert.Equal(t, PolicyPermissive, p.Name())

	_, err = TransitionsFor("chaotic")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" preparing ")
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, s)

	_, err = ParseStatus("LOST")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestNewOrderBackfillsFromStatus(t *testing.T) {
	o, err := NewOrder("user-1", CreateOptions{Status: StatusPreparing})
	require.NoError(t, err)
	assert.NotNil(t, o.AcceptedAt())

	_, err = NewOrder("user-1", CreateOptions{Status: StatusDraft})
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	neg := decimal.NewFromInt(-5)
	_, err = NewOrder("user-1", CreateOptions{TotalPrice: &neg})
	assert.True(t, errors.Is(err, ErrInvalidTotalPrice))
}
