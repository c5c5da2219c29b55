package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/shop-inventory/internal/http/router"
	"github.com/rogerio-castellano/shop-inventory/internal/observability"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

const testOrigin = "http://localhost:5173"

type testEnv struct {
	store   *repo.InMemoryStore
	router  http.Handler
	metrics *observability.Metrics
	now     time.Time
}

// newTestEnv builds the full router on a fresh in-memory store with a fixed clock.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:   repo.NewInMemoryStore(),
		metrics: observability.NewMetrics(),
		now:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := handler.NewServer(env.store, logger,
		handler.WithMetrics(env.metrics),
		handler.WithClock(func() time.Time { return env.now }),
	)
	env.router = router.NewRouter(server, router.Options{
		Logger:        logger,
		Metrics:       env.metrics,
		AllowedOrigin: testOrigin,
	})
	return env
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createProduct(p any) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, "/api/products", p)
}

func (e *testEnv) restock(id int, quantity int) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, fmt.Sprintf("/api/products/%d/restock", id), map[string]int{"quantity": quantity})
}

// mustCreate creates a product and returns the decoded response, failing the test otherwise.
func (e *testEnv) mustCreate(t *testing.T, p any) handler.ProductResponse {
	t.Helper()
	w := e.createProduct(p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	return decode[handler.ProductResponse](t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, w).Error
}

func intPtr(v int) *int {
	return &v
}

func restockRequest(t *testing.T, id, quantity int) *http.Request {
	t.Helper()
	body, err := json.Marshal(handler.RestockRequest{Quantity: &quantity})
	if err != nil {
		t.Fatalf("error encoding restock: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/products/%d/restock", id), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
