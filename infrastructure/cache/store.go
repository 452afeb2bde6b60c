/*
Package cache 键值存储：HTTP 响应缓存与一次性令牌

Redis 开启时使用 RedisStore，否则退回进程内的 MemoryStore，
两者行为一致（过期、NX 写入、删除）。
*/
package cache

import (
	"context"
	"time"
)

// Store 键值存储
type Store interface {
	// Get 未命中返回 (nil, false, nil)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX 键不存在时写入，返回是否写入成功
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}
