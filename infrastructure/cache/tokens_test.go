package cache

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_Verification(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenStore(NewMemoryStore(), time.Minute)

	code, err := tokens.IssueVerification(ctx, "user-1")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)

	userID, ok, err := tokens.ConsumeVerification(ctx, code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)

	// 一次性
	_, ok, err = tokens.ConsumeVerification(ctx, code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_Reset(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenStore(NewMemoryStore(), time.Minute)

	token, err := tokens.IssueReset(ctx, "user-1", "a@b.com")
	require.NoError(t, err)
	assert.Len(t, token, 32)

	userID, email, ok, err := tokens.LookupReset(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "a@b.com", email)

	require.NoError(t, tokens.RevokeReset(ctx, token))
	_, _, ok, err = tokens.LookupReset(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_CorruptedResetToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tokens := NewTokenStore(store, time.Minute)

	require.NoError(t, store.Set(ctx, forgetPrefix+"bad", []byte("not-json"), time.Minute))

	_, _, ok, err := tokens.LookupReset(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, _ := store.Get(ctx, forgetPrefix+"bad")
	assert.False(t, found)
}

// fullStore 总是拒绝 NX 写入
type fullStore struct{ *MemoryStore }

func (fullStore) SetNX(context.Context, string, []byte, time.Duration) (bool, error) {
	return false, nil
}

func TestTokenStore_IssueGivesUpAfterCollisions(t *testing.T) {
	tokens := NewTokenStore(fullStore{NewMemoryStore()}, time.Minute)

	_, err := tokens.IssueVerification(context.Background(), "user-1")
	assert.Error(t, err)
}
