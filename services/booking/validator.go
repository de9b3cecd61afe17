package booking

import (
	"context"
	"fmt"
	"time"

	"haven/models"
	"haven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// parseRequestDates parses and normalizes the request's calendar dates.
// Single-day bookings may omit the end date.
func parseRequestDates(req *models.BookingRequest) (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return start, end, &ValidationError{Field: "startDate", Message: "must be a YYYY-MM-DD date"}
	}
	if req.EndDate == "" || req.BookingType == models.BookingSingle {
		return start, start, nil
	}
	end, err = time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return start, end, &ValidationError{Field: "endDate", Message: "must be a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return start, end, &ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}
	return start, end, nil
}

// today returns the current calendar day in UTC.
func (s *DefaultBookingService) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateBooking validates a booking request and, if every rule passes,
// persists the booking in pending status with its price frozen. Checks run
// in a fixed order so clients always see the earliest failing rule: date
// shape, lead time, venue existence, selections, holidays, availability.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, req *models.BookingRequest) (*models.Booking, error) {
	if actor.Role != models.RoleCustomer {
		return nil, &AuthorizationError{Message: "only customers can create bookings"}
	}

	start, end, err := parseRequestDates(req)
	if err != nil {
		return nil, err
	}

	earliest := s.today().AddDate(0, 0, minLeadDays)
	if start.Before(earliest) {
		return nil, &ValidationError{
			Field:   "startDate",
			Message: fmt.Sprintf("bookings must start at least %d days from today", minLeadDays),
		}
	}

	bookingType := req.BookingType
	if bookingType == "" {
		if end.After(start) {
			bookingType = models.BookingMultiple
		} else {
			bookingType = models.BookingSingle
		}
	}

	draft := &models.Booking{
		ID:                 uuid.New().String(),
		CustomerID:         actor.ID,
		CustomerEmail:      actor.Email,
		CustomerName:       actor.Name,
		VenueID:            req.VenueID,
		BookingType:        bookingType,
		StartDate:          start,
		EndDate:            end,
		PhotographyPackage: req.PhotographyPackage,
		Balloons:           req.Balloons,
		MenuItemIDs:        req.MenuItemIDs,
		PaymentMethod:      req.PaymentMethod,
		Status:             models.StatusPending,
		CreatedAt:          s.now().UTC(),
	}

	// Prices the draft and verifies venue, package and menu selections exist.
	quote, err := s.ComputeQuote(ctx, draft)
	if err != nil {
		return nil, err
	}
	draft.TotalAmount = quote.Total

	holidays, err := s.holidays.HolidaysInRange(ctx, start, end)
	if err != nil {
		return nil, &ProviderError{Provider: "holiday calendar", Err: err}
	}
	if len(holidays) > 0 {
		return nil, &ValidationError{
			Field:   "startDate",
			Message: fmt.Sprintf("requested dates include the public holiday %q", holidays[0].Name),
		}
	}

	// Availability is re-checked immediately before the write so a stale
	// calendar view cannot produce an overlapping booking.
	available, err := s.IsRangeAvailable(ctx, req.VenueID, start, end)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &ConflictError{Message: "requested dates are no longer available"}
	}

	if err := s.bookingRepo.Create(ctx, draft); err != nil {
		return nil, err
	}

	s.notify(ctx, models.NotifyPayload{Kind: models.NotifyBookingCreated, BookingID: draft.ID})

	utils.GetLogger().Info("Booking created",
		zap.String("bookingID", draft.ID),
		zap.String("venueID", draft.VenueID),
		zap.Float64("total", draft.TotalAmount))
	return draft, nil
}

// QuoteBooking prices a request without persisting anything.
func (s *DefaultBookingService) QuoteBooking(ctx context.Context, req *models.BookingRequest) (*Quote, error) {
	start, end, err := parseRequestDates(req)
	if err != nil {
		return nil, err
	}
	draft := &models.Booking{
		VenueID:            req.VenueID,
		StartDate:          start,
		EndDate:            end,
		PhotographyPackage: req.PhotographyPackage,
		Balloons:           req.Balloons,
		MenuItemIDs:        req.MenuItemIDs,
	}
	return s.ComputeQuote(ctx, draft)
}

// notify enqueues a booking event, logging and swallowing any failure.
func (s *DefaultBookingService) notify(ctx context.Context, payload models.NotifyPayload) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.EnqueueBookingEvent(ctx, payload); err != nil {
		utils.GetLogger().Warn("Failed to enqueue booking notification",
			zap.String("kind", payload.Kind),
			zap.String("bookingID", payload.BookingID),
			zap.Error(err))
	}
}
