package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/config"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/server/handlers"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

func newGateway(t *testing.T, backend http.HandlerFunc) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client := inventory.NewClient(config.APIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second})
	return New(handlers.NewConsoleHandler(client, nil), nil)
}

func productsBackend(n int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer opaque-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		items := make([]map[string]any, n)
		for i := range items {
			items[i] = map[string]any{"id": i + 1, "name": fmt.Sprintf("P%d", i+1), "quantity": i}
		}
		json.NewEncoder(w).Encode(map[string]any{"data": items})
	}
}

func get(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthGateRedirects(t *testing.T) {
	gw := newGateway(t, productsBackend(1))

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "expired jwt", token: signed(t, time.Now().Add(-time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, gw, "/products", tt.token)
			if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
				t.Errorf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
			}
		})
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	parser := jwt.NewParser()
	if expired(parser, signed(t, now.Add(time.Hour)), now) {
		t.Error("expected a live token to pass")
	}
	if !expired(parser, signed(t, now.Add(-time.Minute)), now) {
		t.Error("expected an expired token to fail")
	}
	if expired(parser, "42|opaque", now) {
		t.Error("expected opaque tokens to pass")
	}
}

type pageBody struct {
	Title      string            `json:"title"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
	Items      []json.RawMessage `json:"items"`
}

func TestResourcePagePagination(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		query      string
		wantPage   int
		wantPages  int
		wantLength int
	}{
		{name: "first page", count: 25, query: "", wantPage: 1, wantPages: 3, wantLength: 10},
		{name: "last page", count: 25, query: "?page=3", wantPage: 3, wantPages: 3, wantLength: 5},
		{name: "clamped high", count: 25, query: "?page=99&per_page=20", wantPage: 2, wantPages: 2, wantLength: 5},
		{name: "no items", count: 0, query: "?page=4", wantPage: 1, wantPages: 0, wantLength: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newGateway(t, productsBackend(tt.count))
			rec := get(t, gw, "/products"+tt.query, "opaque-token")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var body pageBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Title != "Products" || body.Page != tt.wantPage || body.TotalPages != tt.wantPages || len(body.Items) != tt.wantLength {
				t.Errorf("unexpected page %+v (items %d)", body, len(body.Items))
			}
		})
	}
}

func TestBackendUnauthorizedRedirects(t *testing.T) {
	gw := newGateway(t, productsBackend(3))
	rec := get(t, gw, "/crm/sellers", "stale-token")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "token=;") {
		t.Errorf("expected the token cookie cleared, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	gw := newGateway(t, productsBackend(0))
	rec := get(t, gw, "/does-not-exist", "opaque-token")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	gw := newGateway(t, productsBackend(0))
	if rec := get(t, gw, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestLoginSetsCookie(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"token":"fresh","user":{"id":1,"name":"Admin"}}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Set-Cookie"), "token=fresh") {
		t.Errorf("expected token cookie, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestExportDownload(t *testing.T) {
	var audited bool
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sellers":
			w.Write([]byte(`[{"id":1,"name":"Ana","email":"ana@example.com"}]`))
		case "/api/export-notifications":
			audited = true
			w.WriteHeader(http.StatusCreated)
		}
	})

	rec := get(t, gw, "/export-import/export/sellers?format=csv&field=name&field=email", "opaque-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "name,email\nAna,ana@example.com\n" {
		t.Errorf("unexpected csv %q", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "sellers_") {
		t.Errorf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
	if !audited {
		t.Error("expected an export notification")
	}
	if got := rec.Header().Get(handlers.ExportAuditHeader); got != "recorded" {
		t.Errorf("expected audit header recorded, got %q", got)
	}
}

func TestExportDownloadReportsFailedAudit(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sellers":
			w.Write([]byte(`[{"id":1,"name":"Ana","email":"ana@example.com"}]`))
		case "/api/export-notifications":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"audit log unavailable"}`))
		}
	})

	rec := get(t, gw, "/export-import/export/sellers?format=csv&field=name", "opaque-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("download should survive a failed audit, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "name\nAna\n" {
		t.Errorf("unexpected csv %q", rec.Body.String())
	}
	if got := rec.Header().Get(handlers.ExportAuditHeader); got != "failed" {
		t.Errorf("expected audit header failed, got %q", got)
	}
}
