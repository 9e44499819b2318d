// Package realtime pushes notifications to connected clients over WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/metrics"
)

const sendBuffer = 16

// Conn is the part of a WebSocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Relay carries pushes between instances.
type Relay interface {
	Publish(ctx context.Context, email string, payload interface{}) error
	Subscribe(ctx context.Context, deliver func(email string, payload json.RawMessage)) error
}

// Client is one registered connection. A user may hold several.
type Client struct {
	email string
	conn  Conn
	send  chan interface{}
	quit  chan struct{}
	done  chan struct{}
	hub   *Hub
	once  sync.Once
}

// Done is closed once the writer has returned and will not touch the
// connection again.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Hub tracks connections by user e-mail.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	relay   Relay
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

// UseRelay routes every Push through r. Call RunRelay to receive.
func (h *Hub) UseRelay(r Relay) {
	h.relay = r
}

// RunRelay blocks delivering relayed pushes to local connections until ctx is done.
func (h *Hub) RunRelay(ctx context.Context) error {
	if h.relay == nil {
		return nil
	}
	return h.relay.Subscribe(ctx, func(email string, payload json.RawMessage) {
		h.Deliver(email, payload)
	})
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds conn for email and starts its writer.
func (h *Hub) Register(email string, conn Conn) *Client {
	c := &Client{
		email: normalize(email),
		conn:  conn,
		send:  make(chan interface{}, sendBuffer),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		hub:   h,
	}

	h.mu.Lock()
	set, ok := h.clients[c.email]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.email] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	metrics.WebSocketConnections.Inc()
	go c.writeLoop()
	return c
}

// Unregister removes c and tells its writer to stop. Buffered messages are
// discarded. Wait on c.Done() before releasing the connection. Safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	c.once.Do(func() {
		h.mu.Lock()
		if set, ok := h.clients[c.email]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.clients, c.email)
			}
		}
		h.mu.Unlock()
		close(c.quit)
		metrics.WebSocketConnections.Dec()
	})
}

// Push sends payload to every connection of email, across instances when a
// relay is configured.
func (h *Hub) Push(ctx context.Context, email string, payload interface{}) error {
	if h.relay != nil {
		return h.relay.Publish(ctx, normalize(email), payload)
	}
	h.Deliver(email, payload)
	return nil
}

// Deliver enqueues payload on this instance's connections for email and
// returns how many accepted it. A connection with a full buffer is skipped.
func (h *Hub) Deliver(email string, payload interface{}) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients[normalize(email)] {
		select {
		case c.send <- payload:
			delivered++
		default:
			slog.Warn("notification dropped, client buffer full", "email", c.email)
		}
	}

	if delivered > 0 {
		metrics.NotificationPushTotal.WithLabelValues("delivered").Inc()
	} else {
		metrics.NotificationPushTotal.WithLabelValues("offline").Inc()
	}
	return delivered
}

// ConnectionCount returns the number of open connections on this instance.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*Client, 0)
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.Unregister(c)
	}
}

func (c *Client) writeLoop() {
	defer close(c.done)
	for {
		select {
		case <-c.quit:
			return
		case msg := <-c.send:
			// quit wins over a ready message.
			select {
			case <-c.quit:
				return
			default:
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				slog.Warn("websocket write failed", "email", c.email, "error", err)
				c.hub.Unregister(c)
				return
			}
		}
	}
}
