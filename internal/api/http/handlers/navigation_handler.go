package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/navigation"
)

// NavigationHandler answers client route capability checks.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Resolve GET /navigation?path=.
func (h *NavigationHandler) Resolve(c *fiber.Ctx) error {
	var identity *domain.Identity
	if id, ok := auth.IdentityFromContext(c); ok {
		identity = &id
	}
	decision := navigation.Resolve(c.Query("path"), identity)
	return c.JSON(fiber.Map{"success": true, "data": decision})
}
