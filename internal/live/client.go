package live

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/querycache"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Client is one websocket connection. Clients only receive; anything they
// send besides control frames is discarded.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	keys      []string
	sessionID string
}

// NewClient wraps conn. keys limits delivery to matching cache keys; empty
// means every key.
func NewClient(hub *Hub, conn *websocket.Conn, sessionID string, keys []string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		keys:      keys,
		sessionID: sessionID,
	}
}

func (c *Client) wants(key string) bool {
	if len(c.keys) == 0 {
		return true
	}
	for _, k := range c.keys {
		if querycache.Matches(k, key) {
			return true
		}
	}
	return false
}

// ReadPump reads until the connection fails, then unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("live connection closed", zap.String("session_id", c.sessionID), zap.Error(err))
			}
			return
		}
	}
}

// WritePump writes queued messages and keepalive pings until the hub closes
// the send channel or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
