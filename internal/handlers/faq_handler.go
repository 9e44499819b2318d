package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FAQHandler struct {
	faqs *services.FAQService
}

func NewFAQHandler(faqs *services.FAQService) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

func (h *FAQHandler) List(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.FAQ, error) { return h.faqs.List(c.UserContext()) })
}

func (h *FAQHandler) Active(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.FAQ, error) { return h.faqs.Active(c.UserContext()) })
}

func (h *FAQHandler) ByCategory(c *fiber.Ctx) error {
	return h.respond(c, func() ([]models.FAQ, error) { return h.faqs.ByCategory(c.UserContext(), c.Params("category")) })
}

func (h *FAQHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	faq, err := h.faqs.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(faq)
}

func (h *FAQHandler) Create(c *fiber.Ctx) error {
	var req dto.FAQRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	faq, err := h.faqs.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

func (h *FAQHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.FAQRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	faq, err := h.faqs.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(faq)
}

func (h *FAQHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *FAQHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *FAQHandler) setActive(c *fiber.Ctx, active bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	faq, err := h.faqs.SetActive(c.UserContext(), id, active)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(faq)
}

func (h *FAQHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.faqs.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "FAQ deleted successfully"})
}

func (h *FAQHandler) respond(c *fiber.Ctx, fn func() ([]models.FAQ, error)) error {
	list, err := fn()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}
