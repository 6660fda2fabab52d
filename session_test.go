package backoffice

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSessionSignVerify(t *testing.T) {
	a := NewSessionAuthenticator("test-secret", false)
	token := a.Sign("admin")
	if !a.Verify(token) {
		t.Errorf("freshly signed token did not verify")
	}
}

func TestSessionVerifyRejects(t *testing.T) {
	a := NewSessionAuthenticator("test-secret", false)
	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not base64", "not-base64!!"},
		{"no separator", base64.StdEncoding.EncodeToString([]byte("adminsecret"))},
		{"empty username", base64.StdEncoding.EncodeToString([]byte(":test-secret"))},
		{"wrong secret", base64.StdEncoding.EncodeToString([]byte("admin:other-secret"))},
	}
	for _, test := range tests {
		if a.Verify(test.token) {
			t.Errorf("%s: token %q should not verify", test.name, test.token)
		}
	}
}

func TestSessionSecretDefault(t *testing.T) {
	a := NewSessionAuthenticator("", false)
	if !a.Verify(a.Sign("admin")) {
		t.Errorf("default secret roundtrip failed")
	}
}

func TestSessionVerifyOtherAuthenticator(t *testing.T) {
	a := NewSessionAuthenticator("secret-a", false)
	b := NewSessionAuthenticator("secret-b", false)
	if b.Verify(a.Sign("admin")) {
		t.Errorf("token signed with a different secret verified")
	}
}

func TestAPIMiddleware(t *testing.T) {
	a := NewSessionAuthenticator("test-secret", false)
	app := fiber.New()
	app.Use(a.APIMiddleware())
	app.Get(
		"/protected", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401 without cookie, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: a.Sign("admin")})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 with session cookie, got %d", resp.StatusCode)
	}
}

func TestRedirectMiddleware(t *testing.T) {
	a := NewSessionAuthenticator("test-secret", false)
	app := fiber.New()
	app.Use(a.RedirectMiddleware())
	app.Get(
		"/dashboard", func(c *fiber.Ctx) error {
			return c.SendString("dashboard")
		},
	)
	app.Get(
		"/login", func(c *fiber.Ctx) error {
			return c.SendString("login")
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Errorf("expected redirect without cookie, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	// The login page itself stays reachable.
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 on login page, got %d", resp.StatusCode)
	}
}
