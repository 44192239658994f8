package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
)

const (
	TestToken    = "test-token"
	TestEmail    = "warden@hostel.test"
	TestPassword = "secret"
	TestCookie   = "token"
)

// Request is what the fake backend saw of one call.
type Request struct {
	Method        string
	Path          string
	RequestID     string
	Authorization string
	Cookie        string
}

// Backend is an in-memory hostel API served over httptest.
type Backend struct {
	*httptest.Server

	mu          sync.Mutex
	user        record.Record
	collections map[string][]record.Record
	failures    map[string]failure
	requests    []Request
	nextID      int

	// CookieOnly makes login answer without a token in the body.
	CookieOnly bool
	// EmptyUpdates makes PUT answer 204 without a body.
	EmptyUpdates bool
}

type failure struct {
	status  int
	message string
}

// NewBackend starts a fake API with every resource kind registered and an
// admin user able to log in with TestEmail/TestPassword.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		user: record.Record{
			"id":    float64(1),
			"name":  "Warden",
			"email": TestEmail,
			"role":  "admin",
		},
		collections: map[string][]record.Record{},
		failures:    map[string]failure{},
		nextID:      100,
	}

	router := chi.NewRouter()
	router.Use(b.recordRequest)
	router.Use(b.injectFailures)

	router.Post("/auth/login", b.login)
	router.Group(func(r chi.Router) {
		r.Use(b.authenticate)
		r.Get("/auth/me", b.me)
		r.Post("/auth/logout", b.logout)

		for _, name := range resource.Names() {
			kind, _ := resource.Lookup(name)
			endpoint := kind.Endpoint
			r.Get(endpoint, b.list(endpoint))
			r.Post(endpoint, b.create(endpoint))
			r.Get(endpoint+"/{id}", b.get(endpoint))
			r.Put(endpoint+"/{id}", b.update(endpoint))
			r.Delete(endpoint+"/{id}", b.delete(endpoint))
			if kind.StatusPath != "" {
				r.Put(endpoint+"/{id}/"+kind.StatusPath, b.update(endpoint))
			}
		}
	})

	b.Server = httptest.NewServer(router)
	t.Cleanup(b.Close)

	return b
}

// APIConfig points a client at the fake backend.
func (b *Backend) APIConfig() config.APIConfig {
	return config.APIConfig{
		BaseURL:       b.URL,
		Timeout:       5 * time.Second,
		SessionCookie: TestCookie,
	}
}

func (b *Backend) SetRole(role string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.user["role"] = role
}

// Seed replaces the collection served at endpoint.
func (b *Backend) Seed(endpoint string, records ...record.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seeded := make([]record.Record, 0, len(records))
	for _, r := range records {
		seeded = append(seeded, r.Clone())
	}
	b.collections[endpoint] = seeded
}

func (b *Backend) Records(endpoint string) []record.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]record.Record(nil), b.collections[endpoint]...)
}

// Fail makes every method call on path answer status with message until cleared.
func (b *Backend) Fail(method, path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, message: message}
}

func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = map[string]failure{}
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

func (b *Backend) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			RequestID:     r.Header.Get("X-Request-ID"),
			Authorization: r.Header.Get("Authorization"),
		}
		if cookie, err := r.Cookie(TestCookie); err == nil {
			req.Cookie = cookie.Value
		}

		b.mu.Lock()
		b.requests = append(b.requests, req)
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		f, ok := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if ok {
			writeMessage(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			if cookie, err := r.Cookie(TestCookie); err == nil {
				token = cookie.Value
			}
		}

		if token != TestToken {
			writeMessage(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	if creds.Email != TestEmail || creds.Password != TestPassword {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: TestCookie, Value: TestToken, Path: "/", HttpOnly: true})

	b.mu.Lock()
	body := map[string]any{"user": b.user.Clone()}
	b.mu.Unlock()
	if !b.CookieOnly {
		body["token"] = TestToken
	}

	writeJSON(w, http.StatusOK, body)
}

func (b *Backend) me(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.user)
}

func (b *Backend) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (b *Backend) list(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		records := b.collections[endpoint]
		if records == nil {
			records = []record.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (b *Backend) get(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		i := b.indexOf(endpoint, chi.URLParam(r, "id"))
		if i < 0 {
			writeMessage(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, b.collections[endpoint][i])
	}
}

func (b *Backend) create(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := decodeBody(w, r)
		if !ok {
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		b.nextID++
		payload[record.FieldID] = float64(b.nextID)
		payload[record.FieldCreatedAt] = time.Now().UTC().Format(time.RFC3339)
		if _, has := payload[record.FieldStatus]; !has {
			payload[record.FieldStatus] = "pending"
		}

		b.collections[endpoint] = append([]record.Record{payload}, b.collections[endpoint]...)
		writeJSON(w, http.StatusCreated, payload)
	}
}

func (b *Backend) update(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, ok := decodeBody(w, r)
		if !ok {
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		i := b.indexOf(endpoint, chi.URLParam(r, "id"))
		if i < 0 {
			writeMessage(w, http.StatusNotFound, "Not found")
			return
		}

		updated := b.collections[endpoint][i].Merge(patch)
		b.collections[endpoint][i] = updated

		if b.EmptyUpdates {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (b *Backend) delete(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		i := b.indexOf(endpoint, chi.URLParam(r, "id"))
		if i < 0 {
			writeMessage(w, http.StatusNotFound, "Not found")
			return
		}

		records := b.collections[endpoint]
		b.collections[endpoint] = append(records[:i:i], records[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (b *Backend) indexOf(endpoint, id string) int {
	want, _ := record.Key(id)
	for i, r := range b.collections[endpoint] {
		if got, ok := r.ID(); ok && got == want {
			return i
		}
	}
	return -1
}

func decodeBody(w http.ResponseWriter, r *http.Request) (record.Record, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid body")
		return nil, false
	}

	var payload record.Record
	if err = json.Unmarshal(data, &payload); err != nil || payload == nil {
		writeMessage(w, http.StatusBadRequest, "Invalid body")
		return nil, false
	}
	return payload, true
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
