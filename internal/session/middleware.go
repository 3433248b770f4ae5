package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
)

const (
	// CookieName is the cookie holding the signed session reference.
	CookieName = "admin_session"
	// LoginPath is where browsers without a session are sent.
	LoginPath = "/auth"

	sessionKey = "session"
	clientKey  = "backendClient"
)

// RequireSession admits requests that carry a valid session, either as the
// admin_session cookie or as "Authorization: Bearer <cookie value>". Browsers
// without one are redirected to the login view; other callers get 401.
//
// On success the session and a backend client bound to its token are stored
// in the gin context.
func RequireSession(manager *Manager, factory *backend.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := cookieValue(c)
		if raw == "" {
			deny(c)
			return
		}

		s, err := manager.Resolve(c.Request.Context(), raw)
		if err != nil {
			deny(c)
			return
		}

		Attach(c, s, factory.New(s.Token))
		c.Next()
	}
}

func cookieValue(c *gin.Context) string {
	if v, err := c.Cookie(CookieName); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func deny(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	response.Error(c, apperror.Auth(nil, http.StatusUnauthorized, "login required"))
}

func wantsHTML(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet && strings.Contains(c.GetHeader("Accept"), "text/html")
}

// SetCookie writes the session cookie.
func SetCookie(c *gin.Context, value string, m *Manager, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, int(m.TTL().Seconds()), "/", "", secure, true)
}

// ClearCookie expires the session cookie.
func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

// CookieValue returns the raw session reference sent with the request.
func CookieValue(c *gin.Context) string {
	return cookieValue(c)
}

// Attach stores the session and its backend client in the gin context.
func Attach(c *gin.Context, s *Session, client *backend.Client) {
	c.Set(sessionKey, s)
	c.Set(clientKey, client)
}

// FromContext returns the session attached by RequireSession, or nil.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// Client returns the backend client attached by RequireSession, or nil.
func Client(c *gin.Context) *backend.Client {
	if v, ok := c.Get(clientKey); ok {
		if cl, ok := v.(*backend.Client); ok {
			return cl
		}
	}
	return nil
}
