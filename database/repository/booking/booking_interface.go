package bookingRepo

import (
	"context"
	"errors"
	"time"

	"haven/models"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrStatusConflict is returned when a conditional status update matched
	// no document, i.e. the persisted status no longer equals the expected
	// "from" status.
	ErrStatusConflict = errors.New("booking status conflict")
	// ErrAlreadyRated is returned when a rating write finds the booking
	// already rated or not finished.
	ErrAlreadyRated = errors.New("booking already rated or not finished")
)

// MonthlyStat is one month's booking count and realized revenue for a venue.
type MonthlyStat struct {
	Month    int     `bson:"_id"`
	Bookings int     `bson:"bookings"`
	Revenue  float64 `bson:"revenue"`
}

// BookingRepository defines data access for booking records. Implementations
// normalize stored documents into the strict Booking shape before returning
// them; callers never see representation variants.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByVenue retrieves all bookings on file for a venue.
	ListByVenue(ctx context.Context, venueID string) ([]models.Booking, error)
	// ListByVenueAndStatuses retrieves a venue's bookings in any of the given statuses.
	ListByVenueAndStatuses(ctx context.Context, venueID string, statuses []models.BookingStatus) ([]models.Booking, error)
	// ListByCustomer retrieves all bookings created by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// Transition atomically moves a booking from one status to the next,
	// stamping the transition timestamp and any extra fields in the same
	// write. The update is conditional on the persisted status still being
	// `from`; ErrStatusConflict is returned otherwise and nothing is mutated.
	Transition(ctx context.Context, id string, from, to models.BookingStatus, at time.Time, extra map[string]any) error
	// SetRating stores a one-time rating on a finished booking. The write is
	// conditional on status == finished and no prior rating.
	SetRating(ctx context.Context, id string, rating int, comment string, at time.Time) error
	// MergeCheckout sets checkout session details on an existing booking
	// (per-document atomic merge).
	MergeCheckout(ctx context.Context, id string, checkoutSessionID, paymentMethod string) error
	// UpsertCheckout merges checkout session details onto the booking with
	// the given id, inserting the draft as a pending record when no booking
	// exists yet. An existing record is updated in place, never duplicated.
	UpsertCheckout(ctx context.Context, draft *models.Booking, checkoutSessionID, paymentMethod string) error
	// MonthlyStats aggregates per-month booking counts and realized revenue
	// for a venue in the given year.
	MonthlyStats(ctx context.Context, venueID string, year int) ([]MonthlyStat, error)
}
