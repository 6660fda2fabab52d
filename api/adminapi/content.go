package adminapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/atelier-sites/backoffice/content"
	"github.com/atelier-sites/backoffice/internal/cache"
)

// lastModifiedKey is stamped into every stored section document so the
// dashboard overview can show when a section last changed.
const lastModifiedKey = "_lastModified"

// sectionCacheInvalidation clears the cached section document for requests
// that successfully modify it. The section is taken from the route parameter
// unless fixed is set. It should be attached only to non-GET routes.
func sectionCacheInvalidation(fixed string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status >= 200 && status < 400 {
			section := fixed
			if section == "" {
				section = sectionParam(c)
			}
			if section != "" {
				_ = cache.Delete(content.CacheKey(section))
			}
		}
		return nil
	}
}

func sectionParam(c *fiber.Ctx) string {
	return strings.ToLower(c.Params("section"))
}

// registerContentRead wires the public section read handler. The site itself
// fetches these documents, so no session is required and responses allow any
// origin.
func registerContentRead(r fiber.Router, sections *content.Chain) {
	r.Get(
		"/content/:section", func(c *fiber.Ctx) error {
			section := sectionParam(c)
			if section == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Section required"})
			}
			doc, err := sections.GetOrDefault(section)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch section"})
			}
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
			c.Set(fiber.HeaderCacheControl, "no-store")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(doc)
		},
	)
}

// registerContentWrite wires the section update handler.
func registerContentWrite(r fiber.Router, sections *content.Chain) {
	withCacheWipe := r.Group("/content", sectionCacheInvalidation(""))

	withCacheWipe.Put(
		"/:section", func(c *fiber.Ctx) error {
			section := sectionParam(c)
			if section == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Section required"})
			}
			var doc map[string]any
			// A body of `null` unmarshals into a nil map.
			if err := json.Unmarshal(c.Body(), &doc); err != nil || doc == nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
			}
			doc[lastModifiedKey] = time.Now().UTC().Format(time.RFC3339)
			raw, err := json.Marshal(doc)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update section"})
			}
			if err = sections.Put(section, raw); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update section"})
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(raw)
		},
	)
}
