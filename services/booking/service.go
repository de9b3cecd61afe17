package booking

import (
	"context"
	"time"

	bookingRepo "haven/database/repository/booking"
	menuRepo "haven/database/repository/menu"
	venueRepo "haven/database/repository/venue"
	"haven/models"
)

// minLeadDays is how many full days ahead of today a booking must start.
const minLeadDays = 3

// HolidayProvider surfaces public holidays overlapping a date range.
type HolidayProvider interface {
	HolidaysInRange(ctx context.Context, start, end time.Time) ([]models.Holiday, error)
}

// Notifier hands a booking event to the notification pipeline. Delivery is
// best effort and happens after the triggering state change is durably
// committed; a notifier failure never rolls the transition back.
type Notifier interface {
	EnqueueBookingEvent(ctx context.Context, payload models.NotifyPayload) error
}

// BookingService is the core booking API.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, req *models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListVenueBookings(ctx context.Context, actor models.Actor, venueID string) ([]models.Booking, error)
	ListMyBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	BookedRanges(ctx context.Context, venueID string) ([]DateRange, error)
	QuoteBooking(ctx context.Context, req *models.BookingRequest) (*Quote, error)

	Approve(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	Start(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	MarkReady(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	Finish(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	Rate(ctx context.Context, actor models.Actor, id string, rating int, comment string) (*models.Booking, error)

	CreateCheckout(ctx context.Context, actor models.Actor, id string) (*CheckoutSession, error)
	CreateItemsCheckout(ctx context.Context, req ItemsCheckoutRequest) (*ItemsCheckoutResult, error)
	ConfirmPayment(ctx context.Context, actor models.Actor, id, sessionID string) (*models.Booking, error)
	PayInApp(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)

	VenueStats(ctx context.Context, actor models.Actor, venueID string, year int) (*VenueStats, error)
}

// DefaultBookingService implements BookingService on top of the Mongo
// repositories and external providers.
type DefaultBookingService struct {
	bookingRepo bookingRepo.BookingRepository
	venueRepo   venueRepo.VenueRepository
	menuRepo    menuRepo.MenuRepository
	holidays    HolidayProvider
	checkout    CheckoutClient
	notifier    Notifier

	// now is swappable in tests.
	now func() time.Time
}

// NewBookingService wires a DefaultBookingService.
func NewBookingService(
	bookings bookingRepo.BookingRepository,
	venues venueRepo.VenueRepository,
	menu menuRepo.MenuRepository,
	holidays HolidayProvider,
	checkout CheckoutClient,
	notifier Notifier,
) *DefaultBookingService {
	return &DefaultBookingService{
		bookingRepo: bookings,
		venueRepo:   venues,
		menuRepo:    menu,
		holidays:    holidays,
		checkout:    checkout,
		notifier:    notifier,
		now:         time.Now,
	}
}
