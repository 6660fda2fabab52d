package model

import (
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingStatusPending marks a booking that has been placed but not paid.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusPaid marks a booking with a completed payment.
	BookingStatusPaid BookingStatus = "paid"
	// BookingStatusCancelled marks a cancelled booking. Terminal: this
	// service never moves a booking out of cancelled.
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a row in the bookings table. Bookings are created by the public
// site at checkout time; the backoffice only reads them and cancels them.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Reference is the unique, immutable booking identifier shown to customers.
	Reference   string `gorm:"uniqueIndex" json:"reference"`
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
	Currency    string `json:"currency"`
	// AmountPaid is in minor units of Currency.
	AmountPaid int64  `json:"amount_paid"`
	PayType    string `json:"pay_type"`
	// AppointmentDate is stored as written by the site (YYYY-MM-DD).
	AppointmentDate string        `gorm:"index" json:"appointment_date"`
	TimeWindow      string        `json:"time_window"`
	Country         string        `json:"country"`
	City            string        `json:"city"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerEmail   string        `json:"customer_email"`
	InstagramHandle string        `json:"instagram_handle"`
	Notes           string        `json:"notes"`
	Status          BookingStatus `gorm:"index" json:"status"`
	PaymentSession  string        `gorm:"column:payment_session_id" json:"payment_session_id"`
}

// TableName keeps the table name the public site writes to.
func (Booking) TableName() string { return "bookings" }

// BookingFilters are the optional predicates for listing bookings. Empty or
// "all" values are omitted from the query entirely rather than matched as
// wildcards. All present filters are AND-combined.
type BookingFilters struct {
	Status  string
	Country string
	City    string
	// Search matches case-insensitively as a substring against the booking
	// reference, customer name and customer phone.
	Search string
	// StartDate/EndDate bound the appointment date, inclusive on both ends,
	// in YYYY-MM-DD form.
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// BookingStore abstracts the read/cancel surface over the bookings table.
type BookingStore interface {
	// List returns bookings matching the filters, newest first. A query that
	// matches nothing returns an empty slice, not an error.
	List(filters BookingFilters) ([]Booking, error)
	// ByReference returns the booking with the given reference, or nil.
	ByReference(reference string) (*Booking, error)
	// CountPending returns the number of bookings with status pending.
	CountPending() (int64, error)
	// Cancel sets the booking status to cancelled and returns the updated
	// row, or nil when no row matches. The transition is applied
	// unconditionally; cancelling an already cancelled booking succeeds.
	Cancel(reference string) (*Booking, error)
	// FilterOptions returns the distinct countries and cities present in the
	// table, for filter dropdowns.
	FilterOptions() (countries, cities []string, err error)
}
