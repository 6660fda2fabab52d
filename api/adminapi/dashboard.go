package adminapi

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"tideland.dev/go/slices"

	"github.com/atelier-sites/backoffice/content"
	"github.com/atelier-sites/backoffice/internal/version"
	"github.com/atelier-sites/backoffice/storage/model"
)

type sectionStatus struct {
	ID           string `json:"id"`
	LastModified string `json:"lastModified"`
}

type siteStatus struct {
	Online      bool    `json:"online"`
	LastUpdated *string `json:"lastUpdated"`
	Version     string  `json:"version"`
}

type dashboardPayload struct {
	Sections    []sectionStatus `json:"sections"`
	ImagesCount int             `json:"imagesCount"`
	Status      siteStatus      `json:"status"`
}

// registerDashboard wires the dashboard overview handler. The overview walks
// all known sections, reports when each last changed, counts portfolio items,
// and probes the public site.
func registerDashboard(r fiber.Router, sections *content.Chain, siteOrigin string) {
	r.Get(
		"/admin/dashboard", func(c *fiber.Ctx) error {
			payload := dashboardPayload{
				Status: siteStatus{Version: version.VERSION},
			}

			imagesCount := 0
			payload.Sections = slices.Map(
				model.Sections, func(section string) sectionStatus {
					lm := time.Now().UTC().Format(time.RFC3339)
					doc, err := sections.Get(section)
					if err == nil && doc != nil {
						var parsed map[string]any
						if json.Unmarshal(doc, &parsed) == nil {
							if v, ok := parsed[lastModifiedKey].(string); ok && v != "" {
								lm = v
							}
							if section == model.SectionPortfolio {
								if items, ok := parsed["items"].([]any); ok {
									imagesCount = len(items)
								}
							}
						}
					}
					return sectionStatus{ID: section, LastModified: lm}
				},
			)
			payload.ImagesCount = imagesCount

			// RFC 3339 timestamps order lexicographically.
			for _, s := range payload.Sections {
				if s.LastModified == "" {
					continue
				}
				if payload.Status.LastUpdated == nil || s.LastModified > *payload.Status.LastUpdated {
					lm := s.LastModified
					payload.Status.LastUpdated = &lm
				}
			}

			if siteOrigin != "" && sections.Remote != nil {
				payload.Status.Online = sections.Remote.Ping(siteOrigin)
			}
			return c.JSON(payload)
		},
	)
}
