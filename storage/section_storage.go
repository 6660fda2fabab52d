package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atelier-sites/backoffice/storage/model"
)

// SectionStorage implements model.SectionStore using GORM.
type SectionStorage struct {
	db *gorm.DB
}

// Get returns the JSON document for a section. If not found, returns nil, nil.
func (s *SectionStorage) Get(section string) (datatypes.JSON, error) {
	// Read the JSON/JSONB value as raw bytes to support scalar JSON documents.
	var raw []byte
	row := s.db.Model(&model.Section{}).
		Select("value").
		Where(
			&model.Section{
				Name: section,
			},
		).
		Row()
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return raw, nil
}

// Put upserts the JSON document for a section.
func (s *SectionStorage) Put(section string, doc datatypes.JSON) error {
	if section == "" {
		return model.BadRequestError("section name must not be empty")
	}
	sec := model.Section{
		Name:  section,
		Value: doc,
	}
	return s.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "name"},
			},
			// Resetting deleted_at revives a previously deleted section.
			DoUpdates: clause.AssignmentColumns(
				[]string{
					"value",
					"updated_at",
					"deleted_at",
				},
			),
		},
	).Create(&sec).Error
}

// Delete removes a section document. No error if it's missing.
func (s *SectionStorage) Delete(section string) error {
	return s.db.Where(
		&model.Section{
			Name: section,
		},
	).Delete(&model.Section{}).Error
}

// GetAs retrieves and unmarshals the document for a section into out.
// out must be a pointer to the target type. Returns (false, nil) if not found.
func (s *SectionStorage) GetAs(section string, out any) (bool, error) {
	raw, err := s.Get(section)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}
