package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.bookings.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.bookings.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	list, err := h.bookings.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *BookingHandler) ByCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.bookings.ByCustomer(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// ByProvider lists bookings the provider received.
func (h *BookingHandler) ByProvider(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.bookings.ByProvider(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// ByProviderBooker lists bookings the provider made with other providers.
func (h *BookingHandler) ByProviderBooker(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.bookings.ByProviderBooker(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *BookingHandler) ByService(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.bookings.ByService(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *BookingHandler) ByStatus(c *fiber.Ctx) error {
	list, err := h.bookings.ByStatus(c.UserContext(), c.Params("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *BookingHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateBookingRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.bookings.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Cancel reads cancelledBy from the JSON body or the query string.
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CancelBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, errBadBody)
		}
	}
	if req.CancelledBy == "" {
		req.CancelledBy = c.Query("cancelledBy")
	}
	resp, err := h.bookings.Cancel(c.UserContext(), id, req.CancelledBy)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.bookings.Complete(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.bookings.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Booking deleted successfully"})
}
