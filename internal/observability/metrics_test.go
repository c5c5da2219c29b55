package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scrape(m *Metrics) string {
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}

func TestRecordRestock(t *testing.T) {
	m := NewMetrics()

	m.RecordRestock(5)
	m.RecordRestock(-2)
	m.RecordRestock(0)

	body := scrape(m)
	assert.Contains(t, body, "inventory_restocks_total 3")
	assert.Contains(t, body, "inventory_restock_units_added_total 5")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() { m.RecordRestock(1) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotPanics(t, func() {
		m.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewMetrics()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/products", nil))

	body := scrape(m)
	assert.Contains(t, body, `inventory_http_requests_total{code="201",method="POST",route="unknown"} 1`)
	assert.Contains(t, body, "inventory_http_request_duration_seconds_count")
}

func TestMiddlewareKeepsFlusher(t *testing.T) {
	m := NewMetrics()
	flushed := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		if ok {
			f.Flush()
			flushed = true
		}
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.True(t, flushed, "wrapped writer must still implement http.Flusher")
	assert.True(t, w.Flushed)
	assert.Contains(t, scrape(m), `inventory_http_requests_total{code="200",method="GET",route="unknown"} 1`)
}
