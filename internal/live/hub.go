// Package live pushes query cache invalidations to open dashboard pages over
// websockets, so a page showing a list or detail refetches when a verdict or
// account toggle changes it.
package live

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/querycache"
)

// TypeInvalidated is the message type sent when a cache key goes stale.
const TypeInvalidated = "invalidated"

// Message is the JSON frame written to clients.
type Message struct {
	Type string    `json:"type"`
	Key  string    `json:"key"`
	At   time.Time `json:"at"`
}

// Hub owns the connected clients and fans cache events out to them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	cache  *querycache.Cache
	logger *zap.Logger

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	clients map[*Client]struct{}
	count   atomic.Int64
}

func NewHub(cache *querycache.Cache, logger *zap.Logger) *Hub {
	return &Hub{
		cache:      cache,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run subscribes to every cache key and serves the hub until ctx is done.
// On return all client send channels are closed, which ends their write pumps.
func (h *Hub) Run(ctx context.Context) {
	events, cancel := h.cache.Subscribe()
	defer cancel()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.dropAll()
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.logger.Debug("live client connected", zap.String("session_id", c.sessionID), zap.Strings("keys", c.keys))
		case c := <-h.unregister:
			h.drop(c)
		case ev, ok := <-events:
			if !ok {
				h.dropAll()
				return
			}
			h.broadcast(ev)
		}
	}
}

// Register adds c to the hub. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes c. It is a no-op for unknown clients or a stopped hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

func (h *Hub) broadcast(ev querycache.Event) {
	payload, err := json.Marshal(Message{Type: TypeInvalidated, Key: ev.Key, At: ev.At})
	if err != nil {
		h.logger.Error("failed to encode live message", zap.String("key", ev.Key), zap.Error(err))
		return
	}

	for c := range h.clients {
		if !c.wants(ev.Key) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping slow live client", zap.String("session_id", c.sessionID))
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
}

func (h *Hub) dropAll() {
	for c := range h.clients {
		h.drop(c)
	}
}
