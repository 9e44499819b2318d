package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	hub   *realtime.Hub
}

// NewHealthHandler accepts a nil redis client when the relay is disabled.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, hub *realtime.Hub) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, hub: hub}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := database.Ping(ctx, h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
		Redis:       redisStatus,
		Connections: h.hub.ConnectionCount(),
	})
}
