// Package adminapi implements the dashboard's json api: booking management,
// site content and settings editing, media uploads, and the dashboard
// overview.
package adminapi

import (
	"embed"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/atelier-sites/backoffice/content"
	"github.com/atelier-sites/backoffice/media"
	"github.com/atelier-sites/backoffice/storage/model"
)

//go:embed swagger.html openapi.yaml
var assets embed.FS

// Deps bundles everything the api handlers work with.
type Deps struct {
	// Auth guards all routes registered after the public ones. It is
	// installed by the server, not by this package.
	Auth fiber.Handler
	// Bookings is the booking store.
	Bookings model.BookingStore
	// Sections resolves and persists site content documents.
	Sections *content.Chain
	// Settings reads and writes the admin identity inside the settings
	// document.
	Settings model.AdminConfigStore
	// Media uploads files to the public blob store. May be unconfigured.
	Media *media.BlobStore
	// SiteOrigin is the public site origin used for the dashboard status
	// check. Empty disables the check.
	SiteOrigin string
	// ServerURL, when set, is advertised in the served openapi document.
	ServerURL string
}

// Register mounts all api routes under the provided group. Routes registered
// before Deps.Auth are public.
func Register(r fiber.Router, deps Deps) error {
	if deps.Auth == nil {
		return errors.New("adminapi: no auth middleware configured")
	}

	openapiRaw, err := assets.ReadFile("openapi.yaml")
	if err != nil {
		return errors.Wrap(err, "adminapi: failed to read openapi.yaml")
	}
	openapiData := updateOpenAPIServers(openapiRaw, deps.ServerURL)
	swaggerHTML, err := assets.ReadFile("swagger.html")
	if err != nil {
		return errors.Wrap(err, "adminapi: failed to read swagger.html")
	}

	r.Get(
		"/openapi.yaml", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, "application/yaml")
			return c.Send(openapiData)
		},
	)
	r.Get(
		"/docs", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
			return c.Send(swaggerHTML)
		},
	)

	// Site content reads are public; the site itself fetches them.
	registerContentRead(r, deps.Sections)

	r.Use(deps.Auth)

	registerBookings(r, deps.Bookings)
	registerContentWrite(r, deps.Sections)
	registerSettings(r, deps.Sections)
	registerDashboard(r, deps.Sections, deps.SiteOrigin)
	registerMedia(r, deps.Media)
	return nil
}

func updateOpenAPIServers(doc []byte, serverURL string) []byte {
	if len(serverURL) == 0 {
		return doc
	}
	var full map[string]any
	if err := yaml.Unmarshal(doc, &full); err != nil {
		return doc
	}
	full["servers"] = []map[string]any{
		{
			"url":         serverURL,
			"description": "This instance",
		},
	}
	res, err := yaml.Marshal(full)
	if err != nil {
		return doc
	}
	return res
}
