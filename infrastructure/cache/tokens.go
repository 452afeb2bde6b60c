package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"restaurant/pkg/logger"

	"go.uber.org/zap"
)

const (
	verifyPrefix = "VERIFY/"
	forgetPrefix = "FORGET/"

	verifyCodeSpace = 1_000_000
	resetTokenBytes = 16
	issueAttempts   = 5
)

type resetClaim struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// TokenStore 邮箱验证码与重置密码令牌，均为一次性、带过期时间
type TokenStore struct {
	store Store
	ttl   time.Duration
}

func NewTokenStore(store Store, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenStore{store: store, ttl: ttl}
}

// IssueVerification 生成 6 位数字验证码，VERIFY/<code> -> userID
func (t *TokenStore) IssueVerification(ctx context.Context, userID string) (string, error) {
	return t.issue(ctx, verifyPrefix, numericCode, []byte(userID))
}

// ConsumeVerification 读取并删除验证码
func (t *TokenStore) ConsumeVerification(ctx context.Context, code string) (string, bool, error) {
	key := verifyPrefix + code
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	if err := t.store.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("Failed to delete verification code", zap.Error(err))
	}
	return string(raw), true, nil
}

// IssueReset 生成 32 位十六进制令牌，FORGET/<token> -> {id, email}
func (t *TokenStore) IssueReset(ctx context.Context, userID, email string) (string, error) {
	payload, err := json.Marshal(resetClaim{UserID: userID, Email: email})
	if err != nil {
		return "", err
	}
	return t.issue(ctx, forgetPrefix, hexToken, payload)
}

// LookupReset 令牌内容损坏时删除并视为无效
func (t *TokenStore) LookupReset(ctx context.Context, token string) (userID, email string, ok bool, err error) {
	key := forgetPrefix + token
	raw, found, err := t.store.Get(ctx, key)
	if err != nil || !found {
		return "", "", false, err
	}

	var claim resetClaim
	if err := json.Unmarshal(raw, &claim); err != nil || claim.UserID == "" {
		logger.FromContext(ctx).Warn("Corrupted reset token removed", zap.String("key", key))
		return "", "", false, t.store.Delete(ctx, key)
	}
	return claim.UserID, claim.Email, true, nil
}

func (t *TokenStore) RevokeReset(ctx context.Context, token string) error {
	return t.store.Delete(ctx, forgetPrefix+token)
}

// issue NX 写入，碰撞时重新生成
func (t *TokenStore) issue(ctx context.Context, prefix string, generate func() (string, error), value []byte) (string, error) {
	for i := 0; i < issueAttempts; i++ {
		token, err := generate()
		if err != nil {
			return "", err
		}
		stored, err := t.store.SetNX(ctx, prefix+token, value, t.ttl)
		if err != nil {
			return "", err
		}
		if stored {
			return token, nil
		}
	}
	return "", fmt.Errorf("failed to allocate a unique %s token after %d attempts", prefix, issueAttempts)
}

func numericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(verifyCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hexToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
