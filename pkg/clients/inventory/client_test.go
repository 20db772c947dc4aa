package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/config"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, basePath string, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL + basePath, Timeout: 5 * time.Second}, opts...)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "/api", WithTokenStore(NewMemoryTokenStore("abc123")))

	if _, err := client.Products().List(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bearer abc123" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "/api")

	if _, err := client.Sellers().List(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected no authorization header, got %q", got)
	}
}

func TestClientUnauthorized(t *testing.T) {
	tests := []struct {
		name         string
		basePath     string
		location     string
		wantRedirect string
	}{
		{name: "non api url redirects", basePath: "", location: "/products", wantRedirect: LoginPath},
		{name: "api url does not redirect", basePath: "/api", location: "/products", wantRedirect: ""},
		{name: "already on login", basePath: "", location: LoginPath, wantRedirect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewMemoryTokenStore("expired")
			nav := NewPageNavigator(tt.location)
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Unauthenticated."}`))
			}, tt.basePath, WithTokenStore(tokens), WithNavigator(nav))

			_, err := client.Products().List(context.Background(), nil)
			if !IsUnauthorized(err) {
				t.Fatalf("expected unauthorized error, got %v", err)
			}
			if token, _ := tokens.Token(); token != "" {
				t.Errorf("expected token cleared, got %q", token)
			}
			if nav.Redirected() != tt.wantRedirect {
				t.Errorf("expected redirect %q, got %q", tt.wantRedirect, nav.Redirected())
			}
		})
	}
}

func TestClientServerMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"message":"SKU already exists"}`, want: "SKU already exists"},
		{name: "error field", body: `{"error":"invalid room"}`, want: "invalid room"},
		{name: "no message", body: `oops`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tt.body))
			}, "/api")

			_, err := client.Products().Create(context.Background(), models.Product{Name: "Basil"})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != http.StatusUnprocessableEntity {
				t.Errorf("expected 422, got %d", apiErr.Status)
			}
			msg, ok := ServerMessage(err)
			if msg != tt.want || ok != (tt.want != "") {
				t.Errorf("expected message %q, got %q (%v)", tt.want, msg, ok)
			}
		})
	}
}

func TestResourceDecodesEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bare array", body: `[{"id":1,"name":"Ana"},{"id":2,"name":"Bo"}]`},
		{name: "data envelope", body: `{"data":[{"id":1,"name":"Ana"},{"id":2,"name":"Bo"}],"total":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, "/api")

			sellers, err := client.Sellers().List(context.Background(), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sellers) != 2 || sellers[1].Name != "Bo" {
				t.Errorf("unexpected sellers: %+v", sellers)
			}
		})
	}
}

func TestResourceMethodsAndPaths(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			var room models.Room
			json.NewDecoder(r.Body).Decode(&room)
			room.ID = 7
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"data": room})
		default:
			w.Write([]byte(`{"id":7,"name":"Cold room"}`))
		}
	}, "/api")

	ctx := context.Background()
	rooms := client.Rooms()

	created, err := rooms.Create(ctx, models.Room{Name: "Cold room"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected id 7, got %d", created.ID)
	}
	if _, err := rooms.Update(ctx, 7, created); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := rooms.Patch(ctx, 7, map[string]any{"name": "Freezer"}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if err := rooms.Delete(ctx, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"POST /api/rooms", "PUT /api/rooms/7", "PATCH /api/rooms/7", "DELETE /api/rooms/7"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, calls)
	}
}

func TestLoginPersistsToken(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "hubctl", "token.json"))
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"fresh","user":{"id":1,"name":"Admin","role":"admin"}}`))
	}, "/api", WithTokenStore(store))

	result, err := client.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Name != "Admin" {
		t.Errorf("expected user Admin, got %q", result.User.Name)
	}
	if token, _ := store.Token(); token != "fresh" {
		t.Errorf("expected stored token, got %q", token)
	}

	if err := client.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if token, _ := store.Token(); token != "" {
		t.Errorf("expected token removed, got %q", token)
	}
}

func TestUploadImportSendsMultipartFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/import/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "products.csv" || !strings.HasPrefix(string(data), "name,sku") {
			t.Errorf("unexpected upload %s: %s", header.Filename, data)
		}
		w.Write([]byte(`{"imported":2,"errors":[]}`))
	}, "/api")

	summary, err := client.UploadImport(context.Background(), "products", "products.csv",
		strings.NewReader("name,sku\nBasil,B-1\nMint,M-1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", summary.Imported)
	}
}

func TestWithSessionIsolatesCallers(t *testing.T) {
	var (
		mu     sync.Mutex
		leaked []string
	)
	base := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if cookie := r.Header.Get("Cookie"); cookie != "" {
			mu.Lock()
			leaked = append(leaked, token+" sent "+cookie)
			mu.Unlock()
		}
		http.SetCookie(w, &http.Cookie{Name: "laravel_session", Value: token + "-session", Path: "/"})
		w.Write([]byte(`[]`))
	}, "/api")

	alice := base.WithSession(StaticToken("alice"), NewPageNavigator("/products"))
	if _, err := alice.Products().List(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session := base.WithSession(StaticToken("user"+strconv.Itoa(i)), NewPageNavigator("/products"))
			if _, err := session.Products().List(context.Background(), nil); err != nil {
				t.Errorf("session %d: unexpected error: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if len(leaked) != 0 {
		t.Errorf("expected no cookies shared between sessions, got %v", leaked)
	}
	if base.httpClient.GetClient() == alice.httpClient.GetClient() {
		t.Error("expected the session to own its http.Client")
	}
	if base.httpClient.GetClient().Transport != alice.httpClient.GetClient().Transport {
		t.Error("expected the session to share the transport")
	}
}
