package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant/api/ctxutil"
	"restaurant/config"
	"restaurant/domain/user"
	"restaurant/infrastructure/auth"
	"restaurant/infrastructure/cache"
	"restaurant/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.RequestIDFromContext(c.Request.Context()))
	})

	w := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: []string{"req-123"}})
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", w.Body.String())

	w = serve(r, http.MethodGet, "/ping", http.Header{"x-request-id": []string{"req-456"}})
	assert.Equal(t, "req-456", w.Body.String())

	w = serve(r, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, "test")
	userToken, _, err := tokens.Issue("user-1", user.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tokens.Issue("admin-1", user.RoleAdmin)
	require.NoError(t, err)

	r := gin.New()
	authed := r.Group("/", Auth(tokens))
	authed.GET("/me", func(c *gin.Context) {
		p, _ := ctxutil.PrincipalFrom(c)
		c.String(http.StatusOK, p.UserID)
	})
	authed.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	authed.GET("/users/:id", OwnerOrAdmin("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		path   string
		header http.Header
		want   int
	}{
		{"missing token", "/me", nil, http.StatusUnauthorized},
		{"wrong scheme", "/me", http.Header{"Authorization": []string{"Basic abc"}}, http.StatusUnauthorized},
		{"garbage token", "/me", bearer("not-a-jwt"), http.StatusUnauthorized},
		{"valid token", "/me", bearer(userToken), http.StatusOK},
		{"user on admin route", "/admin", bearer(userToken), http.StatusForbidden},
		{"admin on admin route", "/admin", bearer(adminToken), http.StatusOK},
		{"owner", "/users/user-1", bearer(userToken), http.StatusOK},
		{"other user", "/users/user-2", bearer(userToken), http.StatusForbidden},
		{"admin on other user", "/users/user-2", bearer(adminToken), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, tt.path, tt.header)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := serve(r, http.MethodGet, "/me", bearer(userToken))
	assert.Equal(t, "user-1", w.Body.String())
}

func TestCORS(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       600,
	}
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x", http.Header{"Origin": []string{"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))

	w = serve(r, http.MethodGet, "/x", http.Header{"Origin": []string{"http://evil.example"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 2}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/x", nil).Code)

	open := gin.New()
	open.Use(RateLimitMiddleware(&config.RateLimitConfig{Enabled: false}))
	open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(open, http.MethodGet, "/x", nil).Code)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestResponseCache(t *testing.T) {
	store := cache.NewMemoryStore()
	m := metrics.NewServerMetrics("test", prometheus.NewRegistry())

	calls := 0
	r := gin.New()
	r.GET("/products/:id", ResponseCache(store, time.Minute, func(c *gin.Context) string {
		return "product:" + c.Param("id")
	}, m), func(c *gin.Context) {
		calls++
		if c.Param("id") == "missing" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	first := serve(r, http.MethodGet, "/products/p1", nil)
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))

	second := serve(r, http.MethodGet, "/products/p1", nil)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	serve(r, http.MethodGet, "/products/missing", nil)
	serve(r, http.MethodGet, "/products/missing", nil)
	assert.Equal(t, 3, calls)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHits.WithLabelValues("hit")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.CacheHits.WithLabelValues("miss")))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewServerMetrics("test", prometheus.NewRegistry())
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/orders/1", nil)
	serve(r, http.MethodGet, "/orders/2", nil)
	serve(r, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/orders/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}
