package adminapi

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-sites/backoffice/content"
	"github.com/atelier-sites/backoffice/internal/utils"
	"github.com/atelier-sites/backoffice/storage/model"
)

// registerSettings wires the settings handlers. Settings live inside the
// "settings" content section; the handlers merge updates into the stored
// document and turn password changes into bcrypt hashes.
func registerSettings(r fiber.Router, sections *content.Chain) {
	g := r.Group("/admin/settings", sectionCacheInvalidation(model.SectionSettings))

	g.Get(
		"/", func(c *fiber.Ctx) error {
			doc, err := sections.GetOrDefault(model.SectionSettings)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
			}
			var settings map[string]any
			if err = json.Unmarshal(doc, &settings); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
			}
			// Never hand the password hash to the frontend.
			if admin, ok := settings["admin"].(map[string]any); ok {
				delete(admin, "passwordHash")
			}
			return c.JSON(settings)
		},
	)

	g.Put(
		"/", func(c *fiber.Ctx) error {
			var incoming map[string]any
			if err := c.BodyParser(&incoming); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
			}
			doc, err := sections.GetOrDefault(model.SectionSettings)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
			}
			var current map[string]any
			if err = json.Unmarshal(doc, &current); err != nil {
				current = map[string]any{}
			}

			next := utils.MergeMaps(true, current)
			next["profile"] = utils.MergeMaps(
				true, utils.SubMap(current, "profile"), utils.SubMap(incoming, "profile"),
			)
			next["general"] = utils.MergeMaps(
				true, utils.SubMap(current, "general"), utils.SubMap(incoming, "general"),
			)
			admin := utils.MergeMaps(true, utils.SubMap(current, "admin"))

			if in := utils.SubMap(incoming, "admin"); len(in) > 0 {
				if username, ok := in["username"].(string); ok && username != "" {
					admin["username"] = username
				}
				if newPassword, ok := in["newPassword"].(string); ok && newPassword != "" {
					hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
					if err != nil {
						return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save settings"})
					}
					admin["passwordHash"] = string(hash)
				}
			}
			next["admin"] = admin

			raw, err := json.Marshal(next)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save settings"})
			}
			if err = sections.Put(model.SectionSettings, raw); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save settings"})
			}
			return c.JSON(fiber.Map{"ok": true})
		},
	)
}
