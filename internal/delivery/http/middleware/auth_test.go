package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farukalways/freelancing-platform-create/internal/pkg/token"

	"github.com/gofiber/fiber/v3"
)

const testSecret = "test-secret-key"

func newAuthTestApp(t *testing.T, svc token.Service) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())

	mw := NewAuthMiddleware(svc)
	app.Get("/protected", mw.Middleware(), func(c fiber.Ctx) error {
		email, ok := EmailFromCtx(c)
		if !ok {
			t.Errorf("handler ran without a verified identity")
		}
		return c.SendString(email)
	})

	return app
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	svc := token.NewHMACService(testSecret, 24*time.Hour)
	app := newAuthTestApp(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "unAuthorized access" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestAuthMiddleware_TamperedTokenHaltsRequest(t *testing.T) {
	svc := token.NewHMACService(testSecret, 24*time.Hour)
	app := newAuthTestApp(t, svc)

	other := token.NewHMACService("another-secret", 24*time.Hour)
	tok, err := other.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_ValidTokenSetsIdentity(t *testing.T) {
	svc := token.NewHMACService(testSecret, 24*time.Hour)
	app := newAuthTestApp(t, svc)

	tok, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "a@x.com" {
		t.Fatalf("expected identity in handler, got %q", body)
	}
}

func TestRequireOwner_CaseSensitiveExactMatch(t *testing.T) {
	svc := token.NewHMACService(testSecret, 24*time.Hour)

	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	mw := NewAuthMiddleware(svc)
	app.Get("/owned/:email", mw.Middleware(), func(c fiber.Ctx) error {
		if err := RequireOwner(c, c.Params("email")); err != nil {
			return err
		}
		return c.SendString("ok")
	})

	tok, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		path   string
		status int
	}{
		{"/owned/a@x.com", http.StatusOK},
		{"/owned/b@x.com", http.StatusUnauthorized},
		{"/owned/A@x.com", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
	}
}
