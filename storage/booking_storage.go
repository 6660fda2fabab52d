package storage

import (
	"sort"
	"strings"

	arrays "github.com/adam-hanna/arrayOperations"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"tideland.dev/go/slices"

	"github.com/atelier-sites/backoffice/storage/model"
)

const (
	// DefaultBookingPageSize is applied when a caller passes no limit.
	DefaultBookingPageSize = 20
	// MaxBookingPageSize is the hard ceiling on a single page; callers
	// requesting more are clamped rather than rejected.
	MaxBookingPageSize = 100
)

// BookingStorage implements model.BookingStore using GORM.
type BookingStorage struct {
	db *gorm.DB
}

// filterAll is the sentinel filter value that means "do not filter".
const filterAll = "all"

// List returns bookings matching the filters, newest first.
func (s *BookingStorage) List(filters model.BookingFilters) ([]model.Booking, error) {
	query := s.db.Model(&model.Booking{})

	if filters.Status != "" && filters.Status != filterAll {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Country != "" && filters.Country != filterAll {
		query = query.Where("country = ?", filters.Country)
	}
	if filters.City != "" && filters.City != filterAll {
		query = query.Where("city = ?", filters.City)
	}
	// Appointment dates are ISO formatted, lexical comparison is date order.
	if filters.StartDate != "" {
		query = query.Where("appointment_date >= ?", filters.StartDate)
	}
	if filters.EndDate != "" {
		query = query.Where("appointment_date <= ?", filters.EndDate)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(reference) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_phone) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultBookingPageSize
	}
	if limit > MaxBookingPageSize {
		limit = MaxBookingPageSize
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	bookings := make([]model.Booking, 0, limit)
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, errors.Wrap(err, "bookings: list failed")
	}
	return bookings, nil
}

// ByReference retrieves a booking by its reference
func (s *BookingStorage) ByReference(reference string) (*model.Booking, error) {
	var booking model.Booking
	result := s.db.Where("reference = ?", reference).First(&booking)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "bookings: get failed")
	}
	return &booking, nil
}

// CountPending returns the number of pending bookings
func (s *BookingStorage) CountPending() (int64, error) {
	var count int64
	err := s.db.Model(&model.Booking{}).
		Where("status = ?", model.BookingStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "bookings: pending count failed")
	}
	return count, nil
}

// Cancel sets the booking status to cancelled and returns the updated row.
// The update is unconditional: a booking that is already cancelled stays
// cancelled and is still returned.
func (s *BookingStorage) Cancel(reference string) (*model.Booking, error) {
	var booking *model.Booking
	err := s.db.Transaction(
		func(tx *gorm.DB) error {
			var current model.Booking
			if err := tx.Where("reference = ?", reference).First(&current).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return errors.Wrap(err, "bookings: cancel lookup failed")
			}
			if err := tx.Model(&current).Update("status", model.BookingStatusCancelled).Error; err != nil {
				return errors.Wrap(err, "bookings: cancel failed")
			}
			booking = &current
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// FilterOptions returns the distinct countries and cities present in the table.
func (s *BookingStorage) FilterOptions() (countries, cities []string, err error) {
	if err = s.db.Model(&model.Booking{}).Pluck("country", &countries).Error; err != nil {
		return nil, nil, errors.Wrap(err, "bookings: country options failed")
	}
	if err = s.db.Model(&model.Booking{}).Pluck("city", &cities).Error; err != nil {
		return nil, nil, errors.Wrap(err, "bookings: city options failed")
	}
	// Rows without a country or city must not surface as a blank option.
	notEmpty := func(v string) bool { return v != "" }
	countries = arrays.Distinct(slices.Filter(countries, notEmpty))
	cities = arrays.Distinct(slices.Filter(cities, notEmpty))
	sort.Strings(countries)
	sort.Strings(cities)
	return countries, cities, nil
}
