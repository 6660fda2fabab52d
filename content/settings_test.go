package content

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"

	"github.com/atelier-sites/backoffice/storage/model"
)

func TestAdminIdentityMissingDocument(t *testing.T) {
	store := &SettingsStore{Sections: newMemStore()}
	id, err := store.AdminIdentity()
	if err != nil {
		t.Fatal(err)
	}
	if id != nil {
		t.Errorf("expected nil identity without settings document, got %+v", id)
	}
}

func TestAdminIdentityIncomplete(t *testing.T) {
	sections := newMemStore()
	sections.docs["settings"] = datatypes.JSON(`{"admin": {"username": "x"}}`)
	store := &SettingsStore{Sections: sections}

	id, err := store.AdminIdentity()
	if err != nil {
		t.Fatal(err)
	}
	if id != nil {
		t.Errorf("expected nil for incomplete identity, got %+v", id)
	}
}

func TestSetAdminIdentityRoundtrip(t *testing.T) {
	store := &SettingsStore{Sections: newMemStore()}
	want := model.AdminIdentity{Username: "admin", PasswordHash: "$2a$10$hash"}
	if err := store.SetAdminIdentity(want); err != nil {
		t.Fatal(err)
	}
	id, err := store.AdminIdentity()
	if err != nil {
		t.Fatal(err)
	}
	if id == nil || *id != want {
		t.Errorf("expected %+v, got %+v", want, id)
	}
}

func TestSetAdminIdentityPreservesOtherKeys(t *testing.T) {
	sections := newMemStore()
	sections.docs["settings"] = datatypes.JSON(`{"general": {"siteName": "Atelier"}}`)
	store := &SettingsStore{Sections: sections}

	if err := store.SetAdminIdentity(
		model.AdminIdentity{Username: "admin", PasswordHash: "h"},
	); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(sections.docs["settings"], &doc); err != nil {
		t.Fatal(err)
	}
	general, ok := doc["general"].(map[string]any)
	if !ok || general["siteName"] != "Atelier" {
		t.Errorf("general settings were not preserved: %v", doc)
	}
	if _, ok = doc["admin"]; !ok {
		t.Errorf("admin block missing: %v", doc)
	}
}
