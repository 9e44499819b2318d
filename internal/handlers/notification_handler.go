package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.NotificationRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	n, err := h.notifications.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *NotificationHandler) ListForUser(c *fiber.Ctx) error {
	list, err := h.notifications.ListForUser(c.UserContext(), c.Params("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *NotificationHandler) Unread(c *fiber.Ctx) error {
	list, err := h.notifications.Unread(c.UserContext(), c.Params("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifications.UnreadCount(c.UserContext(), c.Params("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) Recent(c *fiber.Ctx) error {
	days, err := intQuery(c, "days", 7)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.notifications.Recent(c.UserContext(), c.Params("email"), days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	n, err := h.notifications.MarkAsRead(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(n)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	marked, err := h.notifications.MarkAllAsRead(c.UserContext(), c.Params("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"markedCount": marked,
		"message":     "All notifications marked as read",
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.notifications.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Notification deleted successfully"})
}

func (h *NotificationHandler) Cleanup(c *fiber.Ctx) error {
	daysOld, err := intQuery(c, "daysOld", 30)
	if err != nil {
		return fail(c, err)
	}
	deleted, err := h.notifications.CleanupRead(c.UserContext(), daysOld)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "deletedCount": deleted})
}

func intQuery(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
	}
	return n, nil
}
