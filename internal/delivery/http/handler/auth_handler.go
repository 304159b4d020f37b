package handler

import (
	"time"

	"github.com/farukalways/freelancing-platform-create/internal/delivery/http/middleware"
	"github.com/farukalways/freelancing-platform-create/internal/pkg/response"
	"github.com/farukalways/freelancing-platform-create/internal/pkg/token"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler issues and clears the credential cookie. Issuance trusts the
// posted identity claim; there is no account check behind it.
type AuthHandler struct {
	tokens     token.Service
	production bool
}

func NewAuthHandler(tokens token.Service, production bool) *AuthHandler {
	return &AuthHandler{tokens: tokens, production: production}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jwt", h.IssueToken)
	r.Get("/logout", h.Logout)
}

func (h *AuthHandler) IssueToken(c fiber.Ctx) error {
	var claim map[string]any
	if err := c.Bind().Body(&claim); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	email, _ := claim["email"].(string)
	tok, err := h.tokens.Issue(email)
	if err != nil {
		return err
	}

	c.Cookie(h.credentialCookie(tok, time.Now().Add(h.tokens.Validity())))
	return response.Success(c)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	cookie := h.credentialCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.Cookie(cookie)
	return response.Success(c)
}

func (h *AuthHandler) credentialCookie(value string, expires time.Time) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteStrictMode
	if h.production {
		// Cross-site frontend in production needs None, which in turn
		// requires Secure.
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	}
}
