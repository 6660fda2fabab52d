package backoffice

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie under which the admin session token is
// stored.
const SessionCookieName = "bo_dashboard_session"

// SessionLifetime is how long a session cookie stays valid.
const SessionLifetime = 24 * time.Hour

const defaultSessionSecret = "backoffice_dashboard_secret"

// SessionAuthenticator issues and verifies admin session tokens. A token is
// the base64 encoding of "<username>:<secret>"; possession of a token with
// the correct secret is the whole proof of identity, there is no server-side
// session state.
type SessionAuthenticator struct {
	secret string
	secure bool
}

// NewSessionAuthenticator creates a SessionAuthenticator with the passed
// shared secret. An empty secret falls back to a built-in default.
func NewSessionAuthenticator(secret string, secureCookies bool) *SessionAuthenticator {
	if secret == "" {
		secret = defaultSessionSecret
	}
	return &SessionAuthenticator{secret: secret, secure: secureCookies}
}

// Sign returns a session token for the passed username.
func (a *SessionAuthenticator) Sign(username string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + a.secret))
}

// Verify reports whether the passed token is a valid session token. Empty
// tokens, undecodable tokens, tokens without a username, and tokens whose
// secret part does not match all fail.
func (a *SessionAuthenticator) Verify(token string) bool {
	if token == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	user, secret, found := strings.Cut(string(decoded), ":")
	if !found {
		return false
	}
	return user != "" && secret == a.secret
}

// SetCookie attaches a fresh session cookie for username to the response.
func (a *SessionAuthenticator) SetCookie(c *fiber.Ctx, username string) {
	c.Cookie(
		&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    a.Sign(username),
			Path:     "/",
			MaxAge:   int(SessionLifetime.Seconds()),
			HTTPOnly: true,
			Secure:   a.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		},
	)
}

// ClearCookie expires the session cookie.
func (a *SessionAuthenticator) ClearCookie(c *fiber.Ctx) {
	c.Cookie(
		&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   a.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		},
	)
}

// Authed reports whether the request carries a valid session cookie.
func (a *SessionAuthenticator) Authed(c *fiber.Ctx) bool {
	return a.Verify(c.Cookies(SessionCookieName))
}

// APIMiddleware guards api routes. Requests without a valid session cookie
// get a 401 json error.
func (a *SessionAuthenticator) APIMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !a.Authed(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		return c.Next()
	}
}

// RedirectMiddleware guards navigation routes. Requests without a valid
// session cookie are redirected to the login page instead of getting a json
// error.
func (a *SessionAuthenticator) RedirectMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !a.Authed(c) && !strings.HasPrefix(c.Path(), "/login") {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}
