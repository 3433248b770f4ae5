// Package testutil provides a scripted stand-in for the marketplace backend
// and request helpers for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/session"
)

// Call is one request received by a FakeBackend.
type Call struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type route struct {
	status int
	body   any
}

// FakeBackend answers scripted JSON responses and records every call.
// Unscripted routes answer 404 with a backend-style message.
type FakeBackend struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]route
	calls  []Call
}

// NewFakeBackend starts a FakeBackend that is closed when t finishes.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{routes: make(map[string]route)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// Handle scripts the response for method and path.
func (b *FakeBackend) Handle(method, path string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = route{status: status, body: body}
}

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, call)
	rt, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	w.WriteHeader(rt.status)
	if rt.body != nil {
		_ = json.NewEncoder(w).Encode(rt.body)
	}
}

// Calls returns the recorded calls to method and path.
func (b *FakeBackend) Calls(method, path string) []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Call
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Factory returns a client factory pointed at the fake.
func (b *FakeBackend) Factory() *backend.Factory {
	return backend.NewFactory(b.URL, 2*time.Second, nil)
}

// WithSession attaches a fixed session and a backend client bound to token,
// standing in for session.RequireSession.
func WithSession(f *backend.Factory, token string) gin.HandlerFunc {
	s := &session.Session{ID: "test-session", Token: token, ExpiresAt: time.Now().Add(time.Hour)}
	return func(c *gin.Context) {
		session.Attach(c, s, f.New(token))
		c.Next()
	}
}

// NewRouter returns a gin engine in test mode.
func NewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// ExecuteRequest serves one request against h and returns the recorder.
func ExecuteRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON decodes the recorder body into a T.
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}
