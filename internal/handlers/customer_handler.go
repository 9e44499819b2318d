package handlers

import (
	"io"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customers *services.CustomerService
}

func NewCustomerHandler(customers *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.customers.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) ByEmail(c *fiber.Ctx) error {
	resp, err := h.customers.ByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.customers.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateCustomerRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.customers.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdatePasswordRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	if err := h.customers.UpdatePassword(c.UserContext(), id, &req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password updated successfully"})
}

func (h *CustomerHandler) UploadImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	data, err := formImage(c)
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.customers.UploadProfileImage(c.UserContext(), id, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) ImageCheck(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.customers.ImageCheck(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.customers.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Customer deleted successfully"})
}

// formImage reads the multipart "file" field.
func formImage(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
