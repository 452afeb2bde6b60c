package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"restaurant/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOutboxStore struct {
	mock.Mock
}

func (m *mockOutboxStore) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]*po.OutboxEventPO)
	return events, args.Error(1)
}

func (m *mockOutboxStore) MarkEventProcessing(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *mockOutboxStore) MarkEventPublished(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *mockOutboxStore) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error {
	return m.Called(ctx, eventID, maxRetries).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *po.OutboxEventPO) error {
	return m.Called(ctx, event).Error(0)
}

func TestNewOutboxWorker_Validation(t *testing.T) {
	store, pub := &mockOutboxStore{}, &mockPublisher{}

	_, err := NewOutboxWorker(nil, pub, time.Second, 10, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(store, nil, time.Second, 10, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(store, pub, 0, 10, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(store, pub, time.Second, 0, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(store, pub, time.Second, 10, 0)
	assert.Error(t, err)
}

func TestOutboxWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	ok := &po.OutboxEventPO{ID: "e1", EventType: "order.checked_out"}
	failing := &po.OutboxEventPO{ID: "e2", EventType: "order.status_changed"}
	locked := &po.OutboxEventPO{ID: "e3", EventType: "booking.created"}

	store := &mockOutboxStore{}
	store.On("GetPendingEvents", ctx, 10).Return([]*po.OutboxEventPO{ok, failing, locked}, nil)
	store.On("MarkEventProcessing", ctx, "e1").Return(nil)
	store.On("MarkEventProcessing", ctx, "e2").Return(nil)
	store.On("MarkEventProcessing", ctx, "e3").Return(errors.New("lock wait"))
	store.On("MarkEventPublished", ctx, "e1").Return(nil)
	store.On("MarkEventFailed", ctx, "e2", 3).Return(nil)

	pub := &mockPublisher{}
	pub.On("Publish", ctx, ok).Return(nil)
	pub.On("Publish", ctx, failing).Return(errors.New("broker down"))

	w, err := NewOutboxWorker(store, pub, time.Second, 10, 3)
	require.NoError(t, err)

	published, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	store.AssertExpectations(t)
	pub.AssertExpectations(t)
	pub.AssertNotCalled(t, "Publish", ctx, locked)
}

func TestOutboxWorker_ProcessBatchFetchError(t *testing.T) {
	ctx := context.Background()
	store := &mockOutboxStore{}
	store.On("GetPendingEvents", ctx, 5).Return(nil, errors.New("db down"))

	w, err := NewOutboxWorker(store, &mockPublisher{}, time.Second, 5, 3)
	require.NoError(t, err)

	_, err = w.ProcessBatch(ctx)
	assert.Error(t, err)
}

func TestOutboxWorker_RunStopsOnCancel(t *testing.T) {
	store := &mockOutboxStore{}
	store.On("GetPendingEvents", mock.Anything, 5).Return([]*po.OutboxEventPO{}, nil)

	w, err := NewOutboxWorker(store, &mockPublisher{}, 5*time.Millisecond, 5, 3)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, w.Run(ctx), context.DeadlineExceeded)
}

func TestLoggingOutboxPublisher(t *testing.T) {
	p := &LoggingOutboxPublisher{}
	assert.NoError(t, p.Publish(context.Background(), &po.OutboxEventPO{ID: "e1"}))
}

func TestOutboxWorker_SkipsClaimedEvents(t *testing.T) {
	ctx := context.Background()
	claimed := &po.OutboxEventPO{ID: "e4", EventType: "booking.status_changed"}

	store := &mockOutboxStore{}
	store.On("GetPendingEvents", ctx, 10).Return([]*po.OutboxEventPO{claimed}, nil)
	store.On("MarkEventProcessing", ctx, "e4").Return(fmt.Errorf("%w: e4", ErrOutboxEventClaimed))

	w, err := NewOutboxWorker(store, &mockPublisher{}, time.Second, 10, 3)
	require.NoError(t, err)

	published, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Zero(t, published)
	store.AssertNotCalled(t, "MarkEventFailed", mock.Anything, mock.Anything, mock.Anything)
}
