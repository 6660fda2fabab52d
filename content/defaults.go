package content

import (
	"encoding/json"

	"github.com/fatih/structs"
	"gorm.io/datatypes"

	"github.com/atelier-sites/backoffice/storage/model"
)

// SettingsScaffold is the shape of a fresh settings document. The admin block
// is intentionally absent: credentials only enter the document through the
// settings endpoint or boctl, never as scaffold defaults.
type SettingsScaffold struct {
	Profile ProfileScaffold `structs:"profile"`
	General GeneralScaffold `structs:"general"`
}

// ProfileScaffold holds the administrator's display profile.
type ProfileScaffold struct {
	Name  string `structs:"name"`
	Email string `structs:"email"`
	Role  string `structs:"role"`
}

// GeneralScaffold holds site-wide presentation settings.
type GeneralScaffold struct {
	SiteName string `structs:"siteName"`
	Tagline  string `structs:"tagline"`
	Phone    string `structs:"phone"`
	Address  string `structs:"address"`
	Website  string `structs:"website"`
	Email    string `structs:"email"`
}

var defaultSettings = SettingsScaffold{
	Profile: ProfileScaffold{
		Name: "Admin",
		Role: "Administrator",
	},
}

// DefaultSectionMap returns the scaffold document for a section as a map.
// Unknown sections scaffold to an empty document.
func DefaultSectionMap(section string) map[string]any {
	switch section {
	case model.SectionHome:
		return map[string]any{
			"hero": map[string]any{
				"eyebrow":  "",
				"title":    "",
				"subtitle": "",
				"slides":   []any{},
			},
			"highlights": []any{},
		}
	case model.SectionServices:
		return map[string]any{
			"hero":     map[string]any{"title": "Our Services", "subtitle": ""},
			"services": []any{},
		}
	case model.SectionPackages:
		return map[string]any{
			"packages": []any{},
		}
	case model.SectionAbout:
		return map[string]any{
			"about":     map[string]any{"title": "", "tagline": "", "bio": "", "image": ""},
			"locations": []any{},
		}
	case model.SectionPortfolio:
		return map[string]any{
			"items": []any{},
		}
	case model.SectionContact:
		return map[string]any{
			"phone":    "",
			"whatsapp": "",
			"email":    "",
			"social":   map[string]any{"instagram": "", "facebook": ""},
			"address":  map[string]any{"lines": []any{}},
		}
	case model.SectionSettings:
		return structs.Map(defaultSettings)
	default:
		return map[string]any{}
	}
}

// DefaultSection returns the scaffold document for a section as JSON.
func DefaultSection(section string) datatypes.JSON {
	doc, err := json.Marshal(DefaultSectionMap(section))
	if err != nil {
		// The scaffolds are static maps of marshalable values.
		return datatypes.JSON([]byte("{}"))
	}
	return doc
}
