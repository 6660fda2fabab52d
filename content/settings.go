package content

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"github.com/atelier-sites/backoffice/storage/model"
)

// SettingsStore is the credential view onto the settings section. It
// implements model.AdminConfigStore on top of any model.SectionStore,
// typically the Chain.
type SettingsStore struct {
	Sections model.SectionStore
}

// AdminIdentity reads the admin block of the settings document. Returns
// (nil, nil) when the document is missing or carries no complete identity.
func (s *SettingsStore) AdminIdentity() (*model.AdminIdentity, error) {
	doc, err := s.Sections.Get(model.SectionSettings)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	var settings struct {
		Admin model.AdminIdentity `json:"admin"`
	}
	if err = json.Unmarshal(doc, &settings); err != nil {
		return nil, errors.Wrap(err, "content: settings document is not valid JSON")
	}
	if !settings.Admin.Complete() {
		return nil, nil
	}
	return &settings.Admin, nil
}

// SetAdminIdentity writes the admin block into the settings document,
// preserving all other keys.
func (s *SettingsStore) SetAdminIdentity(id model.AdminIdentity) error {
	doc, err := s.Sections.Get(model.SectionSettings)
	if err != nil {
		return err
	}
	settings := map[string]any{}
	if doc != nil {
		if err = json.Unmarshal(doc, &settings); err != nil {
			return errors.Wrap(err, "content: settings document is not valid JSON")
		}
	}
	settings["admin"] = map[string]any{
		"username":     id.Username,
		"passwordHash": id.PasswordHash,
	}
	updated, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.Sections.Put(model.SectionSettings, datatypes.JSON(updated))
}
