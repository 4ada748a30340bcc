package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Verifier turns a raw bearer token into the identity it asserts.
type Verifier interface {
	Verify(token string) (domain.Identity, error)
}

// AuthMiddleware validates bearer tokens.
type AuthMiddleware struct {
	verifier Verifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	identity, err := m.verifier.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("Not authorized, token failed")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional attaches an identity when a valid token is present and lets every request through.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if token, err := bearerToken(c); err == nil {
		if identity, err := m.verifier.Verify(token); err == nil {
			c.Locals(identityKey, identity)
		}
	}
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("Not authorized, no token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("Not authorized, no token")
	}
	return strings.TrimSpace(parts[1]), nil
}
