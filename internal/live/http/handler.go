package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/live"
	"github.com/cargorental/admin-dashboard/internal/session"
)

type LiveHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
	origins  []string
	logger   *zap.Logger
}

// NewLiveHandler accepts upgrades from same-host pages and from origins.
func NewLiveHandler(hub *live.Hub, origins []string, logger *zap.Logger) *LiveHandler {
	h := &LiveHandler{hub: hub, origins: origins, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *LiveHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, o := range h.origins {
		if strings.EqualFold(strings.TrimRight(o, "/"), origin) {
			return true
		}
	}
	return false
}

// ServeWS upgrades GET /live. The optional keys query parameter is a comma
// separated list of cache keys to watch, e.g. ?keys=owners,owner:12.
func (h *LiveHandler) ServeWS(c *gin.Context) {
	var keys []string
	for _, k := range strings.Split(c.Query("keys"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the error response.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	var sessionID string
	if s := session.FromContext(c); s != nil {
		sessionID = s.ID
	}

	client := live.NewClient(h.hub, conn, sessionID, keys)
	if !h.hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
