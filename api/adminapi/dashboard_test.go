package adminapi

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/atelier-sites/backoffice/storage/model"
)

func TestDashboardOverview(t *testing.T) {
	env := newTestEnv(t)
	env.local.docs["home"] = datatypes.JSON(`{"_lastModified": "2026-08-20T10:00:00Z"}`)
	env.local.docs["portfolio"] = datatypes.JSON(
		`{"_lastModified": "2026-08-25T10:00:00Z", "items": [{}, {}, {}]}`,
	)

	resp := env.request(t, http.MethodGet, "/api/admin/dashboard", nil, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload dashboardPayload
	decodeBody(t, resp, &payload)

	if len(payload.Sections) != len(model.Sections) {
		t.Errorf("expected %d sections, got %d", len(model.Sections), len(payload.Sections))
	}
	byID := map[string]sectionStatus{}
	for _, s := range payload.Sections {
		byID[s.ID] = s
		if s.LastModified == "" {
			t.Errorf("section %s: empty lastModified", s.ID)
		}
	}
	if byID["home"].LastModified != "2026-08-20T10:00:00Z" {
		t.Errorf("home lastModified wrong: %+v", byID["home"])
	}
	if payload.ImagesCount != 3 {
		t.Errorf("expected 3 portfolio images, got %d", payload.ImagesCount)
	}
	if payload.Status.Version == "" {
		t.Errorf("expected version to be set")
	}
	if payload.Status.Online {
		t.Errorf("expected offline without a site origin")
	}
	if payload.Status.LastUpdated == nil {
		t.Errorf("expected lastUpdated to be set")
	}
}

func TestMediaUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/upload", nil, true)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("expected 503 without blob configuration, got %d", resp.StatusCode)
	}
}
