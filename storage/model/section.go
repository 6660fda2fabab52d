package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Known section names. The content surface is not limited to these; unknown
// sections are served as empty scaffolds.
const (
	SectionHome      = "home"
	SectionAbout     = "about"
	SectionServices  = "services"
	SectionPackages  = "packages"
	SectionPortfolio = "portfolio"
	SectionContact   = "contact"
	SectionSettings  = "settings"
)

// Sections lists the sections the dashboard aggregates over.
var Sections = []string{
	SectionHome,
	SectionAbout,
	SectionServices,
	SectionPackages,
	SectionPortfolio,
	SectionContact,
	SectionSettings,
}

// Section stores one editable site document.
//
// Values are serialized using GORM's json serializer, which leverages the
// database JSON type when available (e.g., PostgreSQL, MySQL) and falls back
// to TEXT in others (e.g., SQLite).
type Section struct {
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Name identifies the document (home, services, settings, ...).
	Name string `gorm:"primaryKey" json:"name"`

	// Value is stored as native JSON/JSONB (where supported) using datatypes.JSON.
	Value datatypes.JSON `json:"value"`
}

// SectionStore abstracts a section-name to JSON-document store. Implementations
// include the database store and the remote/fallback chain in the content
// package.
type SectionStore interface {
	// Get retrieves the document for a section. Returns (nil, nil) if not found.
	Get(section string) (datatypes.JSON, error)

	// Put stores/replaces the document for a section.
	Put(section string, doc datatypes.JSON) error
}
