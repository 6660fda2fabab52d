package backoffice

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/atelier-sites/backoffice/storage/model"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *SessionAuthenticator) {
	t.Helper()
	session := NewSessionAuthenticator("test-secret", false)
	identity := &IdentityResolver{
		store: fakeAdminStore{
			id: &model.AdminIdentity{Username: "admin", PasswordHash: mustHash(t, "hunter2")},
		},
	}
	app := fiber.New()
	registerAuthEndpoints(app, session, identity)
	return app, session
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app, session := newAuthTestApp(t)

	req := httptest.NewRequest(
		http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username": "Admin", "password": "hunter2"}`),
	)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("no session cookie set")
	}
	if !session.Verify(sessionCookie.Value) {
		t.Errorf("session cookie does not verify")
	}
	if !sessionCookie.HttpOnly {
		t.Errorf("session cookie is not http only")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newAuthTestApp(t)

	for _, body := range []string{
		`{"username": "admin", "password": "wrong"}`,
		`{"username": "nobody", "password": "hunter2"}`,
		`{}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("body %s: expected 401, got %d", body, resp.StatusCode)
		}
	}
}

func TestSessionProbe(t *testing.T) {
	app, session := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Sign("admin")})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 with session, got %d", resp.StatusCode)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app, session := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Sign("admin")})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			t.Errorf("logout did not clear the session cookie")
		}
	}
}
