package adminapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelier-sites/backoffice/storage"
	"github.com/atelier-sites/backoffice/storage/model"
)

// registerBookings wires the booking handlers using a BookingStore
// abstraction.
func registerBookings(r fiber.Router, store model.BookingStore) {
	g := r.Group("/bookings")

	g.Get(
		"/", func(c *fiber.Ctx) error {
			page := c.QueryInt("page", 1)
			if page < 1 {
				page = 1
			}
			limit := c.QueryInt("limit", storage.DefaultBookingPageSize)
			if limit < 1 {
				limit = storage.DefaultBookingPageSize
			}
			if limit > storage.MaxBookingPageSize {
				limit = storage.MaxBookingPageSize
			}
			filters := model.BookingFilters{
				Status:    c.Query("status"),
				Country:   c.Query("country"),
				City:      c.Query("city"),
				Search:    c.Query("search"),
				StartDate: c.Query("startDate"),
				EndDate:   c.Query("endDate"),
				Limit:     limit,
				Offset:    (page - 1) * limit,
			}
			bookings, err := store.List(filters)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
			}
			return c.JSON(
				fiber.Map{
					"bookings": bookings,
					"page":     page,
					"limit":    limit,
					"hasMore":  len(bookings) == limit,
				},
			)
		},
	)

	g.Get(
		"/options", func(c *fiber.Ctx) error {
			countries, cities, err := store.FilterOptions()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch filter options"})
			}
			return c.JSON(fiber.Map{"countries": countries, "cities": cities})
		},
	)

	g.Get(
		"/count/pending", func(c *fiber.Ctx) error {
			count, err := store.CountPending()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch count"})
			}
			return c.JSON(fiber.Map{"count": count})
		},
	)

	g.Get(
		"/:reference", func(c *fiber.Ctx) error {
			booking, err := store.ByReference(c.Params("reference"))
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
			}
			if booking == nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
			}
			return c.JSON(fiber.Map{"booking": booking})
		},
	)

	g.Patch(
		"/:reference", func(c *fiber.Ctx) error {
			var req struct {
				Status string `json:"status"`
			}
			// A malformed body simply fails the status guard below.
			_ = c.BodyParser(&req)
			if req.Status != string(model.BookingStatusCancelled) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only status=cancelled is allowed"})
			}
			booking, err := store.Cancel(c.Params("reference"))
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
			}
			if booking == nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
			}
			return c.JSON(fiber.Map{"booking": booking})
		},
	)
}
