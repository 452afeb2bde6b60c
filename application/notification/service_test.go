package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/domain/notification"
	"restaurant/infrastructure/persistence/mocks"
	"restaurant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newService(t *testing.T) *ApplicationService {
	t.Helper()
	svc := NewApplicationService(mocks.NewMockNotificationRepository())
	fixed := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := "user-1"

	created, err := svc.Create(ctx, CreateRequest{UserID: &userID, Type: "order_ready", Message: "  Your order is ready  "})
	require.NoError(t, err)
	assert.Equal(t, "ORDER_READY", created.Type)
	assert.Nil(t, created.ReadAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)

	_, err = svc.Create(ctx, CreateRequest{Type: "PARTY", Message: "x"})
	assert.True(t, errors.Is(err, notification.ErrInvalidType))
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := "user-1"

	created, err := svc.Create(ctx, CreateRequest{UserID: &userID, Type: "NEW_ORDER", Message: "hello"})
	require.NoError(t, err)

	first, err := svc.MarkRead(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ReadAt)

	svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	second, err := svc.MarkRead(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.ReadAt.Equal(*second.ReadAt))
}

func TestListUnreadAndMarkAll(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	alice, bob := "alice", "bob"

	for _, req := range []CreateRequest{
		{UserID: &alice, Type: "ORDER_READY", Message: "1"},
		{UserID: &alice, Type: "ORDER_DELIVERED", Message: "2"},
		{UserID: &bob, Type: "ORDER_READY", Message: "3"},
		{Type: "NEW_ORDER", Message: "broadcast"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	items, total, _, err := svc.List(ctx, ListQuery{UserID: alice, Unread: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	result, err := svc.MarkAllRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Updated)

	_, total, _, err = svc.List(ctx, ListQuery{UserID: alice, Unread: true})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, _, err = svc.List(ctx, ListQuery{Type: "order_ready"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Type: "NEW_RESERVATION", Message: "table for two"})
	require.NoError(t, err)

	readAt := time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC)
	msg := "table for three"
	updated, err := svc.Update(ctx, created.ID, UpdateRequest{Message: &msg, ReadAt: &readAt})
	require.NoError(t, err)
	assert.Equal(t, msg, updated.Message)
	require.NotNil(t, updated.ReadAt)

	updated, err = svc.Update(ctx, created.ID, UpdateRequest{Unread: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ReadAt)

	_, err = svc.Update(ctx, created.ID, UpdateRequest{})
	assert.True(t, errors.Is(err, notification.ErrEmptyUpdate))

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, notification.ErrNotificationNotFound))
}

type failingSink struct {
	mock.Mock
}

func (f *failingSink) Notify(ctx context.Context, d notification.Draft) error {
	return f.Called(ctx, d).Error(0)
}

func TestNotifySwallowsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	sink := new(failingSink)
	sink.On("Notify", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	userID := "user-1"
	assert.NotPanics(t, func() {
		Notify(context.Background(), sink, notification.Draft{UserID: &userID, Type: notification.TypeOrderReady, Message: "m"})
	})
	sink.AssertExpectations(t)

	warns := logs.FilterMessage("Failed to write notification").All()
	require.Len(t, warns, 1)
	assert.Equal(t, "ORDER_READY", warns[0].ContextMap()["type"])

	Notify(context.Background(), nil, notification.Draft{Type: notification.TypeNewOrder, Message: "m"})
}

func TestSinkAdapterPersists(t *testing.T) {
	svc := newService(t)
	adapter := NewSinkAdapter(svc)

	require.NoError(t, adapter.Notify(context.Background(), notification.Draft{Type: notification.TypeNewOrder, Message: "New order"}))
	_, total, _, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	err = adapter.Notify(context.Background(), notification.Draft{Type: notification.TypeNewOrder})
	assert.Error(t, err)
}
