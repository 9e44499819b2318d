package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ListingHandler struct {
	listings *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

func (h *ListingHandler) ListActive(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ListActive(c.UserContext())
	})
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.listings.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ListingHandler) ByProvider(c *fiber.Ctx) error {
	id, err := paramID(c, "providerId")
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByProvider(c.UserContext(), id)
	})
}

func (h *ListingHandler) ByCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "categoryId")
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByCategory(c.UserContext(), id)
	})
}

func (h *ListingHandler) Search(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.Search(c.UserContext(), c.Query("keyword"), c.Query("city"))
	})
}

func (h *ListingHandler) ByLocation(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByLocation(c.UserContext(), c.Params("city"), c.Params("state"))
	})
}

func (h *ListingHandler) ByCity(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByCity(c.UserContext(), c.Params("city"))
	})
}

// ByCategoryAndCity reads categoryId and city from the query string.
func (h *ListingHandler) ByCategoryAndCity(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Query("categoryId"))
	if err != nil {
		return badRequest(c, "Invalid categoryId")
	}
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByCategoryAndCity(c.UserContext(), categoryID, c.Query("city"))
	})
}

func (h *ListingHandler) ByNameAndCity(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByNameAndCity(c.UserContext(), c.Query("name"), c.Query("city"))
	})
}

func (h *ListingHandler) ByLocationAndCategory(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, func() ([]dto.ServiceResponse, error) {
		return h.listings.ByLocationAndCategory(c.UserContext(), c.Params("city"), c.Params("state"), categoryID)
	})
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateServiceRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.listings.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateServiceRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.listings.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.listings.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Service deleted successfully"})
}

func (h *ListingHandler) respond(c *fiber.Ctx, fn func() ([]dto.ServiceResponse, error)) error {
	list, err := fn()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}
