package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := NewHTTPMetrics("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/owners/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/owners/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("test", "GET", "/owners/{id}", "404")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.statuses.WithLabelValues("test", "4xx")))
}

func TestHandler_Exposition(t *testing.T) {
	m := NewHTTPMetrics("test")
	m.requests.WithLabelValues("test", "GET", "/health", "200").Inc()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="/health",service="test",status="200"} 1`)
}

func TestStatusCategory(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{304, ""},
		{422, "4xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusCategory(tt.status), tt.status)
	}
}
