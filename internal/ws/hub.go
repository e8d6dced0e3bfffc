package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nordvolt/gridcore/internal/telemetry"
)

// Client represents one connected dashboard/bidding-UI WebSocket
// connection. ID is a generated identifier used only for logging; it
// has no meaning to the simulation core.
//
// subscriptions narrows which server->client message types this client
// receives, per spec §6's note that a bidding-only UI need not pay for
// the full tick stream. A nil map means "subscribed to everything",
// the default until the client sends a control:subscribe message.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu            sync.RWMutex
	subscriptions map[string]bool
}

// Hub manages WebSocket clients and broadcasts messages. It is the
// fan-out point between the Runner's tick callback and every connected
// viewer, per spec §5's read-only, snapshot-only external access.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// NewClient wraps a WebSocket connection with a generated id and an
// outbound buffer.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{ID: uuid.NewString(), hub: hub, conn: conn, send: make(chan []byte, 256)}
}

// Subscribe narrows the set of server->client message types c receives
// to types. An empty slice restores the default of receiving every type.
func (c *Client) Subscribe(types []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(types) == 0 {
		c.subscriptions = nil
		return
	}
	c.subscriptions = make(map[string]bool, len(types))
	for _, t := range types {
		c.subscriptions[t] = true
	}
}

func (c *Client) wants(msgType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.subscriptions == nil {
		return true
	}
	return c.subscriptions[msgType]
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast sends msg, an envelope of the given type, to every connected
// client subscribed to that type.
func (h *Hub) Broadcast(msgType string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.wants(msgType) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			telemetry.WSMessagesDroppedTotal.WithLabelValues(msgType).Inc()
			log.Printf("ws: client %s buffer full, dropping %s message", c.ID, msgType)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
