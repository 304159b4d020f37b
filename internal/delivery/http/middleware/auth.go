package middleware

import (
	"github.com/farukalways/freelancing-platform-create/internal/pkg/response"
	"github.com/farukalways/freelancing-platform-create/internal/pkg/token"

	"github.com/gofiber/fiber/v3"
)

const (
	// CookieName is where the caller stores the credential.
	CookieName = "token"

	ctxEmailKey = "auth_email"
)

type AuthMiddleware struct {
	tokens token.Service
}

func NewAuthMiddleware(tokens token.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Middleware verifies the credential cookie. A missing, tampered or expired
// credential halts the request with 401; handlers never run with an unset
// identity.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tok := c.Cookies(CookieName)
		if tok == "" {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
		}

		claims, err := m.tokens.Verify(tok)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, err)
		}

		c.Locals(ctxEmailKey, claims.Email)
		return c.Next()
	}
}

// EmailFromCtx returns the verified identity set by Middleware.
func EmailFromCtx(c fiber.Ctx) (string, bool) {
	email, ok := c.Locals(ctxEmailKey).(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// RequireOwner is the sole access-control check: the path-supplied email
// must equal the verified identity, compared exactly and case-sensitively.
func RequireOwner(c fiber.Ctx, pathEmail string) error {
	email, ok := EmailFromCtx(c)
	if !ok || email != pathEmail {
		return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}
	return nil
}
