// Package stream fans chart surface events out to connected websocket
// clients. Clients joining mid-session receive a full snapshot first, then
// the incremental event stream.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chartd/internal/surface"
)

const clientBufferSize = 64

// Hub distributes surface events to websocket subscribers.
type Hub struct {
	log      zerolog.Logger
	snapshot func() surface.Snapshot
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub seeding new clients from snapshot.
func NewHub(snapshot func() surface.Snapshot, log zerolog.Logger) *Hub {
	return &Hub{
		log:      log,
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish fans one surface event out to every connected client. It never
// blocks the render path: clients too slow to drain their buffer are
// dropped.
func (h *Hub) Publish(event surface.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Msg("marshal surface event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Warn().Msg("dropping slow websocket client")
			h.removeLocked(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWS upgrades the request and serves the event stream until the client
// disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBufferSize)}

	// Register and enqueue the snapshot under the lock so no event published
	// concurrently can slip in between.
	snap, err := json.Marshal(surface.SnapshotEvent(h.snapshot()))
	if err != nil {
		h.log.Error().Err(err).Msg("marshal snapshot")
		conn.Close()
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	c.send <- snap
	h.mu.Unlock()

	go c.writeLoop()
	go h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (c *client) writeLoop() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.conn.Close()
			return
		}
	}
	c.conn.Close()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked closes the client exactly once; callers hold h.mu.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	c.conn.Close()
}
