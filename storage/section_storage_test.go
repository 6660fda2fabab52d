package storage

import (
	"testing"

	"gorm.io/datatypes"
)

func TestSectionPutGet(t *testing.T) {
	s := newTestStorage(t)
	store := s.SectionStorage()

	doc, err := store.Get("home")
	if err != nil {
		t.Fatal(err)
	}
	if doc != nil {
		t.Fatalf("expected nil for missing section, got %s", doc)
	}

	if err = store.Put("home", datatypes.JSON(`{"hero": {"title": "Welcome"}}`)); err != nil {
		t.Fatal(err)
	}
	doc, err = store.Get("home")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != `{"hero": {"title": "Welcome"}}` {
		t.Errorf("unexpected document: %s", doc)
	}
}

func TestSectionPutOverwrites(t *testing.T) {
	s := newTestStorage(t)
	store := s.SectionStorage()

	if err := store.Put("about", datatypes.JSON(`{"v": 1}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("about", datatypes.JSON(`{"v": 2}`)); err != nil {
		t.Fatal(err)
	}
	doc, err := store.Get("about")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != `{"v": 2}` {
		t.Errorf("expected second write to win, got %s", doc)
	}
}

func TestSectionGetAs(t *testing.T) {
	s := newTestStorage(t)
	store := s.SectionStorage()

	if err := store.Put("contact", datatypes.JSON(`{"email": "hi@example.org"}`)); err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Email string `json:"email"`
	}
	found, err := store.GetAs("contact", &parsed)
	if err != nil {
		t.Fatal(err)
	}
	if !found || parsed.Email != "hi@example.org" {
		t.Errorf("unexpected result: found=%v parsed=%+v", found, parsed)
	}

	found, err = store.GetAs("missing", &parsed)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Errorf("expected missing section to report not found")
	}
}

func TestSectionDelete(t *testing.T) {
	s := newTestStorage(t)
	store := s.SectionStorage()

	if err := store.Put("services", datatypes.JSON(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("services"); err != nil {
		t.Fatal(err)
	}
	doc, err := store.Get("services")
	if err != nil {
		t.Fatal(err)
	}
	if doc != nil {
		t.Errorf("expected nil after delete, got %s", doc)
	}
}
