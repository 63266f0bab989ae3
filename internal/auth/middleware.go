package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, extracted from token claims.
// Handlers scope every query on UserID; client-supplied ids are never trusted.
type Principal struct {
	UserID   int64
	Username string
}

// Middleware validates bearer tokens and stores the Principal in request
// locals. It holds no state beyond the token manager; each request is
// verified independently.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the guard.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Require rejects requests without a valid bearer token. Missing, malformed,
// expired and mis-signed tokens all fail closed with 401.
func (m *Middleware) Require(c *fiber.Ctx) error {
	principal, err := m.authenticate(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Optional authenticates when a valid bearer token is present and proceeds
// anonymously otherwise. An invalid token degrades to anonymous rather than
// rejecting, so unauthenticated forecast lookups keep working.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	if principal, err := m.authenticate(c); err == nil {
		c.Locals(principalKey, principal)
	}
	return c.Next()
}

func (m *Middleware) authenticate(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	return &Principal{UserID: userID, Username: claims.Subject}, nil
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
