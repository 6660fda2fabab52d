package adminapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func TestSettingsGetRedactsHash(t *testing.T) {
	env := newTestEnv(t)
	env.local.docs["settings"] = datatypes.JSON(
		`{"admin": {"username": "admin", "passwordHash": "$2a$10$secret"}, "general": {"siteName": "Atelier"}}`,
	)

	resp := env.request(t, http.MethodGet, "/api/admin/settings", nil, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var settings map[string]any
	decodeBody(t, resp, &settings)
	admin, ok := settings["admin"].(map[string]any)
	if !ok {
		t.Fatalf("missing admin block: %v", settings)
	}
	if _, leaked := admin["passwordHash"]; leaked {
		t.Errorf("password hash leaked: %v", admin)
	}
	if admin["username"] != "admin" {
		t.Errorf("username missing: %v", admin)
	}
}

func TestSettingsPutMerges(t *testing.T) {
	env := newTestEnv(t)
	env.local.docs["settings"] = datatypes.JSON(
		`{"profile": {"name": "Old", "role": "Administrator"},` +
			`"general": {"siteName": "Atelier", "phone": "123"},` +
			`"admin": {"username": "admin", "passwordHash": "keep"}}`,
	)

	resp := env.request(
		t, http.MethodPut, "/api/admin/settings",
		strings.NewReader(`{"profile": {"name": "New"}, "general": {"phone": "456"}}`), true,
	)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var doc map[string]any
	if err := json.Unmarshal(env.local.docs["settings"], &doc); err != nil {
		t.Fatal(err)
	}
	profile := doc["profile"].(map[string]any)
	if profile["name"] != "New" || profile["role"] != "Administrator" {
		t.Errorf("profile merge wrong: %v", profile)
	}
	general := doc["general"].(map[string]any)
	if general["phone"] != "456" || general["siteName"] != "Atelier" {
		t.Errorf("general merge wrong: %v", general)
	}
	admin := doc["admin"].(map[string]any)
	if admin["passwordHash"] != "keep" || admin["username"] != "admin" {
		t.Errorf("admin block must survive untouched: %v", admin)
	}
}

func TestSettingsPutChangesCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.local.docs["settings"] = datatypes.JSON(
		`{"admin": {"username": "old", "passwordHash": "oldhash"}}`,
	)

	resp := env.request(
		t, http.MethodPut, "/api/admin/settings",
		strings.NewReader(`{"admin": {"username": "new", "newPassword": "s3cret"}}`), true,
	)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var doc map[string]any
	if err := json.Unmarshal(env.local.docs["settings"], &doc); err != nil {
		t.Fatal(err)
	}
	admin := doc["admin"].(map[string]any)
	if admin["username"] != "new" {
		t.Errorf("username not updated: %v", admin)
	}
	hash, _ := admin["passwordHash"].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not match new password: %v", err)
	}
	// The plaintext must never be stored.
	if _, ok := admin["newPassword"]; ok {
		t.Errorf("plaintext password stored: %v", admin)
	}
}
