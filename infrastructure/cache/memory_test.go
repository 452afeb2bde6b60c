package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedStore() (*MemoryStore, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, now := newClockedStore()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	*now = now.Add(time.Minute)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_SetNX(t *testing.T) {
	ctx := context.Background()
	s, now := newClockedStore()

	stored, err := s.SetNX(ctx, "k", []byte("first"), time.Second)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = s.SetNX(ctx, "k", []byte("second"), time.Second)
	require.NoError(t, err)
	assert.False(t, stored)

	*now = now.Add(2 * time.Second)
	stored, err = s.SetNX(ctx, "k", []byte("third"), time.Second)
	require.NoError(t, err)
	assert.True(t, stored)

	v, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "third", string(v))
}

func TestMemoryStore_DeleteAndCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	v, ok, _ := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(v))

	require.NoError(t, s.Delete(ctx, "k", "missing"))
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}
