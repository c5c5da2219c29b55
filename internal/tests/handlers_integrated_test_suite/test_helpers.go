package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/shop-inventory/internal/db"
	handler "github.com/rogerio-castellano/shop-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/shop-inventory/internal/http/router"
	"github.com/rogerio-castellano/shop-inventory/internal/repo"
)

// newRouter serves the API from a real SQL database. It uses PostgreSQL when
// TEST_DATABASE_URL is set and a private in-memory SQLite database otherwise.
func newRouter(t *testing.T) (http.Handler, *sqlx.DB) {
	t.Helper()
	ctx := context.Background()

	driver, dsn := db.DriverSQLite, "file::memory:?_foreign_keys=1"
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		driver, dsn = db.DriverPostgres, url
	}

	database, err := db.Connect(ctx, driver, dsn)
	if err != nil {
		t.Fatalf("❌ Could not connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.EnsureSchema(ctx, database); err != nil {
		t.Fatalf("could not create schema: %v", err)
	}
	if driver == db.DriverPostgres {
		if _, err := database.ExecContext(ctx, `TRUNCATE restock_logs, products RESTART IDENTITY CASCADE`); err != nil {
			t.Fatalf("could not reset tables: %v", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := handler.NewServer(repo.NewSQLStore(database), logger)
	return router.NewRouter(server, router.Options{Logger: logger, AllowedOrigin: "http://localhost:5173"}), database
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, r http.Handler, p any) handler.ProductResponse {
	t.Helper()
	w := do(r, http.MethodPost, "/api/products", p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func restock(r http.Handler, id, quantity int) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, fmt.Sprintf("/api/products/%d/restock", id), map[string]int{"quantity": quantity})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return v
}
