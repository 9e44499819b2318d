package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// DataInitHandler serves /api/init.
type DataInitHandler struct {
	demo     *services.DemoDataService
	listings *services.ListingService
}

func NewDataInitHandler(demo *services.DemoDataService, listings *services.ListingService) *DataInitHandler {
	return &DataInitHandler{demo: demo, listings: listings}
}

func (h *DataInitHandler) ServicesCount(c *fiber.Ctx) error {
	list, err := h.listings.ListAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ServicesCountResponse{TotalServices: len(list), Services: list})
}

func (h *DataInitHandler) DemoData(c *fiber.Ctx) error {
	resp, err := h.demo.Seed(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
