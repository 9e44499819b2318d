package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RatingHandler struct {
	ratings *services.RatingService
}

func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

func (h *RatingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRatingRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.ratings.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *RatingHandler) ByService(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.ratings.ByService(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *RatingHandler) ByBooking(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.ratings.ByBooking(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *RatingHandler) Average(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.ratings.Average(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *RatingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.ratings.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Rating deleted successfully"})
}
