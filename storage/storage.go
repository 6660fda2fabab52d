package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-sites/backoffice/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db *gorm.DB
}

var models = []any{
	&model.Section{},
	&model.Booking{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// BookingStorage returns a BookingStorage
func (s *Storage) BookingStorage() *BookingStorage {
	return &BookingStorage{db: s.db}
}

// SectionStorage returns a SectionStorage
func (s *Storage) SectionStorage() *SectionStorage {
	return &SectionStorage{db: s.db}
}
