package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargorental/admin-dashboard/internal/backend"
)

func setupRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard", RequireSession(m, backend.NewFactory("http://backend.test", time.Second, nil)), func(c *gin.Context) {
		s := FromContext(c)
		cl := Client(c)
		c.JSON(http.StatusOK, gin.H{"session": s.ID, "authenticated": cl != nil && cl.Authenticated()})
	})
	return r
}

func TestRequireSession_Cookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour)
	s, cookie, err := m.Create(context.Background(), "tok")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	w := httptest.NewRecorder()
	setupRouter(m).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), s.ID)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestRequireSession_Bearer(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour)
	_, cookie, err := m.Create(context.Background(), "tok")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+cookie)
	w := httptest.NewRecorder()
	setupRouter(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSession_Unauthenticated(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour)
	r := setupRouter(m)

	t.Run("api caller gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"auth"`)
	})

	t.Run("browser is redirected to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	t.Run("revoked session", func(t *testing.T) {
		s, cookie, err := m.Create(context.Background(), "tok")
		require.NoError(t, err)
		require.NoError(t, m.Destroy(context.Background(), s.ID))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
