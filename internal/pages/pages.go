// Package pages renders the public pages of the dashboard: the landing page,
// the admin sign in page and the legal pages linked from the mobile app.
package pages

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	authHttp "github.com/cargorental/admin-dashboard/internal/auth/http"
	"github.com/cargorental/admin-dashboard/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const loginEndpoint = "/auth/login"

type homeData struct {
	Title       string
	DownloadURL string
}

type authData struct {
	Title         string
	LoginPath     string
	DashboardPath string
}

type Handler struct {
	tmpl    *template.Template
	manager *session.Manager
}

// NewHandler parses the embedded templates. manager may be nil, in which case
// the sign in page never redirects.
func NewHandler(manager *session.Manager) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl, manager: manager}, nil
}

func (h *Handler) render(c *gin.Context, name string, data any) {
	c.Render(http.StatusOK, render.HTML{Template: h.tmpl, Name: name, Data: data})
}

func (h *Handler) Home(c *gin.Context) {
	h.render(c, "home.tmpl", homeData{Title: "Get the app", DownloadURL: AppDownloadURL})
}

// Auth shows the sign in page, or sends an admin who already holds a valid
// session straight to the dashboard.
func (h *Handler) Auth(c *gin.Context) {
	if h.manager != nil {
		if raw := session.CookieValue(c); raw != "" {
			if _, err := h.manager.Resolve(c.Request.Context(), raw); err == nil {
				c.Redirect(http.StatusFound, authHttp.DashboardPath)
				return
			}
		}
	}
	h.render(c, "auth.tmpl", authData{Title: "Sign in", LoginPath: loginEndpoint, DashboardPath: authHttp.DashboardPath})
}

func (h *Handler) PrivacyPolicy(c *gin.Context) {
	h.render(c, "legal.tmpl", PrivacyPolicy)
}

func (h *Handler) TermsConditions(c *gin.Context) {
	h.render(c, "legal.tmpl", TermsConditions)
}

func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/", h.Home)
	r.GET(session.LoginPath, h.Auth)
	r.GET("/privacy-policy", h.PrivacyPolicy)
	r.GET("/terms-conditions", h.TermsConditions)
}
