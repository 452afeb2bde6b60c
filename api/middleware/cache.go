package middleware

import (
	"bytes"
	"net/http"
	"time"

	"restaurant/infrastructure/cache"
	"restaurant/pkg/logger"
	"restaurant/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const CacheHeader = "X-Cache"

// CacheKeyFunc 返回空字符串表示不缓存
type CacheKeyFunc func(c *gin.Context) string

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache 缓存 200 的 GET 响应体；存储故障只记日志，请求照常处理
func ResponseCache(store cache.Store, ttl time.Duration, key CacheKeyFunc, m *metrics.ServerMetrics) gin.HandlerFunc {
	count := func(result string) {
		if m != nil {
			m.CacheHits.WithLabelValues(result).Inc()
		}
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		k := key(c)
		if k == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)

		body, ok, err := store.Get(ctx, k)
		if err != nil {
			log.Warn("Cache lookup failed", zap.String("key", k), zap.Error(err))
		}
		if ok {
			count("hit")
			c.Header(CacheHeader, "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		count("miss")
		c.Header(CacheHeader, "MISS")
		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if rec.Status() != http.StatusOK || rec.body.Len() == 0 {
			return
		}
		if err := store.Set(ctx, k, rec.body.Bytes(), ttl); err != nil {
			log.Warn("Cache write failed", zap.String("key", k), zap.Error(err))
		}
	}
}
