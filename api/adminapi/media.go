package adminapi

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-sites/backoffice/media"
)

// registerMedia wires the media upload handler.
func registerMedia(r fiber.Router, blobs *media.BlobStore) {
	r.Post(
		"/upload", func(c *fiber.Ctx) error {
			if !blobs.Configured() {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Media uploads are not configured"})
			}
			fileHeader, err := c.FormFile("file")
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
			}
			f, err := fileHeader.Open()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload failed"})
			}
			defer f.Close()
			url, err := blobs.Upload(
				fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), f,
			)
			if err != nil {
				log.WithError(err).Error("media upload failed")
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Upload failed"})
			}
			return c.JSON(fiber.Map{"url": url})
		},
	)
}
