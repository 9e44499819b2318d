package handlers

import (
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	admins    *services.AdminService
	customers *services.CustomerService
	providers *services.ProviderService
	listings  *services.ListingService
	cfg       *config.Config
}

func NewAdminHandler(
	admins *services.AdminService,
	customers *services.CustomerService,
	providers *services.ProviderService,
	listings *services.ListingService,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{admins: admins, customers: customers, providers: providers, listings: listings, cfg: cfg}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.admins.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Init creates the default admin account if it is missing.
func (h *AdminHandler) Init(c *fiber.Ctx) error {
	admin, created, err := h.admins.EnsureDefaultAdmin(c.UserContext(), h.cfg.DefaultAdminEmail, h.cfg.DefaultAdminPassword)
	if err != nil {
		return fail(c, err)
	}
	message := "Admin already exists"
	status := fiber.StatusOK
	if created {
		message = "Default admin created"
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "message": message, "email": admin.Email})
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	admin, err := h.admins.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(admin)
}

func (h *AdminHandler) Customers(c *fiber.Ctx) error {
	list, err := h.customers.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *AdminHandler) Providers(c *fiber.Ctx) error {
	list, err := h.providers.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *AdminHandler) Services(c *fiber.Ctx) error {
	list, err := h.listings.ListAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *AdminHandler) PromoteCustomer(c *fiber.Ctx) error {
	return h.change(c, "customerId", "Customer promoted to admin", func(id uuid.UUID) error {
		return h.admins.SetCustomerAdmin(c.UserContext(), id, true)
	})
}

func (h *AdminHandler) DemoteCustomer(c *fiber.Ctx) error {
	return h.change(c, "customerId", "Customer demoted from admin", func(id uuid.UUID) error {
		return h.admins.SetCustomerAdmin(c.UserContext(), id, false)
	})
}

func (h *AdminHandler) PromoteProvider(c *fiber.Ctx) error {
	return h.change(c, "providerId", "Provider promoted to admin", func(id uuid.UUID) error {
		return h.admins.SetProviderAdmin(c.UserContext(), id, true)
	})
}

func (h *AdminHandler) DemoteProvider(c *fiber.Ctx) error {
	return h.change(c, "providerId", "Provider demoted from admin", func(id uuid.UUID) error {
		return h.admins.SetProviderAdmin(c.UserContext(), id, false)
	})
}

func (h *AdminHandler) VerifyCustomer(c *fiber.Ctx) error {
	return h.change(c, "customerId", "Customer verified", func(id uuid.UUID) error {
		return h.admins.SetCustomerVerified(c.UserContext(), id, true)
	})
}

func (h *AdminHandler) UnverifyCustomer(c *fiber.Ctx) error {
	return h.change(c, "customerId", "Customer unverified", func(id uuid.UUID) error {
		return h.admins.SetCustomerVerified(c.UserContext(), id, false)
	})
}

func (h *AdminHandler) VerifyProvider(c *fiber.Ctx) error {
	return h.change(c, "providerId", "Provider verified", func(id uuid.UUID) error {
		return h.admins.SetProviderVerified(c.UserContext(), id, true)
	})
}

func (h *AdminHandler) UnverifyProvider(c *fiber.Ctx) error {
	return h.change(c, "providerId", "Provider unverified", func(id uuid.UUID) error {
		return h.admins.SetProviderVerified(c.UserContext(), id, false)
	})
}

func (h *AdminHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.admins.Statistics(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

func (h *AdminHandler) change(c *fiber.Ctx, param, message string, fn func(uuid.UUID) error) error {
	id, err := paramID(c, param)
	if err != nil {
		return fail(c, err)
	}
	if err := fn(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}
