package handlers

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/realtime"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WebSocketHandler serves /ws-notifications. The user is identified by the
// email query parameter.
type WebSocketHandler struct {
	hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Upgrade rejects plain HTTP requests and requests without an email.
func (h *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}
	c.Locals("email", email)
	return c.Next()
}

func (h *WebSocketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		email, _ := conn.Locals("email").(string)
		client := h.hub.Register(email, conn)
		// The connection goes back to a pool when this returns, so the
		// writer must be finished first.
		defer func() {
			h.hub.Unregister(client)
			<-client.Done()
		}()
		slog.Info("websocket connected", "email", email)

		// Clients only listen; reading keeps control frames flowing and
		// detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				slog.Info("websocket disconnected", "email", email)
				return
			}
		}
	})
}
