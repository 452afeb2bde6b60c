package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	m := NewServerMetrics("restaurant", prometheus.NewRegistry())
	m.Requests.WithLabelValues("GET", "/api/v1/products", "200").Inc()
	m.CacheHits.WithLabelValues("hit").Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `restaurant_http_requests_total{method="GET",route="/api/v1/products",status="200"} 1`)
	assert.Contains(t, body, `restaurant_cache_lookups_total{result="hit"} 1`)
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewServerMetrics("a", prometheus.NewRegistry())
		NewServerMetrics("a", prometheus.NewRegistry())
	})
}
