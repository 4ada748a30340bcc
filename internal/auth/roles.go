package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// RequireAdmin ensures the verified identity carries the admin flag.
// It must run after AuthMiddleware.Handle.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Not authorized, no token")
		}
		if !identity.IsAdmin {
			return apperrors.NewForbidden("Not authorized as an admin")
		}
		return c.Next()
	}
}
