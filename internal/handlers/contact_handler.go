package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Contact, error) { return h.contacts.List(c.UserContext()) })
}

func (h *ContactHandler) Unresolved(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Contact, error) { return h.contacts.ByResolved(c.UserContext(), false) })
}

func (h *ContactHandler) Resolved(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Contact, error) { return h.contacts.ByResolved(c.UserContext(), true) })
}

func (h *ContactHandler) ByEmail(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.Contact, error) { return h.contacts.ByEmail(c.UserContext(), c.Params("email")) })
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	contact, err := h.contacts.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(contact)
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	contact, err := h.contacts.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.ContactRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	contact, err := h.contacts.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(contact)
}

func (h *ContactHandler) Resolve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	contact, err := h.contacts.Resolve(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(contact)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.contacts.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Contact deleted successfully"})
}

func (h *ContactHandler) respond(c *fiber.Ctx, fn func() ([]models.Contact, error)) error {
	list, err := fn()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}
