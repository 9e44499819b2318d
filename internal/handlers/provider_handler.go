package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProviderHandler struct {
	providers *services.ProviderService
}

func NewProviderHandler(providers *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

func (h *ProviderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.providers.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ProviderHandler) ByEmail(c *fiber.Ctx) error {
	resp, err := h.providers.ByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ProviderHandler) List(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.List(c.UserContext())
	})
}

func (h *ProviderHandler) Verified(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.ListByVerified(c.UserContext(), true)
	})
}

func (h *ProviderHandler) Unverified(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.ListByVerified(c.UserContext(), false)
	})
}

// Nearby expects lat and lon; radius defaults to 20 km.
func (h *ProviderHandler) Nearby(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return badRequest(c, "lat must be a valid latitude")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return badRequest(c, "lon must be a valid longitude")
	}
	radius := services.DefaultSearchRadiusKm
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			return badRequest(c, "radius must be a positive number")
		}
	}
	verifiedOnly := c.QueryBool("verified", false)

	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.Nearby(c.UserContext(), lat, lon, radius, verifiedOnly)
	})
}

func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateProviderRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	resp, err := h.providers.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ProviderHandler) Verify(c *fiber.Ctx) error {
	return h.setVerified(c, true)
}

func (h *ProviderHandler) Reject(c *fiber.Ctx) error {
	return h.setVerified(c, false)
}

func (h *ProviderHandler) setVerified(c *fiber.Ctx, verified bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.providers.SetVerified(c.UserContext(), id, verified)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ProviderHandler) UploadImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	data, err := formImage(c)
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.providers.UploadProfileImage(c.UserContext(), id, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ProviderHandler) ImageCheck(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.providers.ImageCheck(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.providers.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Provider deleted successfully"})
}

// Search handles /api/search; blank parameters are ignored.
func (h *ProviderHandler) Search(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.Search(c.UserContext(), c.Query("service"), c.Query("area"), c.Query("city"))
	})
}

func (h *ProviderHandler) SearchByCity(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.ByCity(c.UserContext(), c.Query("city"))
	})
}

func (h *ProviderHandler) SearchByService(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.ByServiceType(c.UserContext(), c.Query("serviceType"))
	})
}

func (h *ProviderHandler) SearchByServiceAndCity(c *fiber.Ctx) error {
	return h.respond(c, func() ([]dto.ProviderResponse, error) {
		return h.providers.ByServiceTypeAndCity(c.UserContext(), c.Query("serviceType"), c.Query("city"))
	})
}

func (h *ProviderHandler) Cities(c *fiber.Ctx) error {
	return h.values(c, func() ([]string, error) { return h.providers.DistinctCities(c.UserContext()) })
}

func (h *ProviderHandler) ServiceTypes(c *fiber.Ctx) error {
	return h.values(c, func() ([]string, error) { return h.providers.DistinctServiceTypes(c.UserContext()) })
}

func (h *ProviderHandler) Areas(c *fiber.Ctx) error {
	return h.values(c, func() ([]string, error) { return h.providers.DistinctAreas(c.UserContext(), c.Query("city")) })
}

func (h *ProviderHandler) respond(c *fiber.Ctx, fn func() ([]dto.ProviderResponse, error)) error {
	list, err := fn()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *ProviderHandler) values(c *fiber.Ctx, fn func() ([]string, error)) error {
	values, err := fn()
	if err != nil {
		return fail(c, err)
	}
	if values == nil {
		values = []string{}
	}
	return c.JSON(values)
}
