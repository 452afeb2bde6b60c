package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectGet("product:1").SetVal(`{"id":"1"}`)
	mock.ExpectGet("product:2").RedisNil()
	mock.ExpectSet("product:1", []byte("body"), time.Minute).SetVal("OK")
	mock.ExpectSetNX("VERIFY/123456", []byte("user-1"), 30*time.Minute).SetVal(true)
	mock.ExpectDel("VERIFY/123456").SetVal(1)

	v, ok, err := store.Get(ctx, "product:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, string(v))

	_, ok, err = store.Get(ctx, "product:2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "product:1", []byte("body"), time.Minute))

	stored, err := store.SetNX(ctx, "VERIFY/123456", []byte("user-1"), 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	require.NoError(t, store.Delete(ctx, "VERIFY/123456"))
	require.NoError(t, store.Delete(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}
