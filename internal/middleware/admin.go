package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired runs after JWTProtected and admits:
// 1. requests with the configured X-Admin-Token
// 2. tokens whose email is listed in ADMIN_EMAILS
// 3. tokens whose account currently holds the ADMIN role
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if hasAdminToken(c, cfg) {
			return c.Next()
		}

		claims, ok := Claims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, strings.ToLower(email)) {
			return c.Next()
		}

		role, _ := claims["role"].(string)
		kind, _ := claims["kind"].(string)
		if id, ok := Subject(c); ok && role == models.RoleAdmin {
			if isAdmin(db.WithContext(c.UserContext()), kind, id) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

// isAdmin re-checks the role so a demotion takes effect before the token expires.
func isAdmin(db *gorm.DB, kind string, id interface{}) bool {
	var model interface{}
	switch kind {
	case models.RoleAdmin:
		model = &models.Admin{}
	case models.RoleCustomer:
		model = &models.Customer{}
	case models.RoleProvider:
		model = &models.Provider{}
	default:
		return false
	}
	var n int64
	if err := db.Model(model).Where("id = ? AND role = ?", id, models.RoleAdmin).Count(&n).Error; err != nil {
		return false
	}
	return n > 0
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
