package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "haven/database/repository/booking"
	"haven/models"
	"haven/utils"

	"go.uber.org/zap"
)

// canActOnVenue reports whether the actor may operate a venue's bookings.
// Admins may act anywhere; owners only on their assigned venue.
func canActOnVenue(actor models.Actor, venueID string) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleOwner:
		return actor.VenueAssigned == venueID
	default:
		return false
	}
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCustomer && b.CustomerID != actor.ID {
		return nil, &AuthorizationError{Message: "booking belongs to another customer"}
	}
	if actor.Role == models.RoleOwner && !canActOnVenue(actor, b.VenueID) {
		return nil, &AuthorizationError{Message: "booking belongs to another venue"}
	}
	return b, nil
}

func (s *DefaultBookingService) ListVenueBookings(ctx context.Context, actor models.Actor, venueID string) ([]models.Booking, error) {
	if !canActOnVenue(actor, venueID) {
		return nil, &AuthorizationError{Message: "not authorized for this venue"}
	}
	return s.bookingRepo.ListByVenue(ctx, venueID)
}

func (s *DefaultBookingService) ListMyBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	return s.bookingRepo.ListByCustomer(ctx, actor.ID)
}

// Approve moves a pending booking to approved. Venue staff only.
func (s *DefaultBookingService) Approve(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.transition(ctx, actor, id, models.StatusPending, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.NotifyPayload{Kind: models.NotifyBookingApproved, BookingID: b.ID})
	return b, nil
}

// Start moves an approved booking to ongoing on the event day. Venue staff only.
func (s *DefaultBookingService) Start(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.transition(ctx, actor, id, models.StatusApproved, models.StatusOngoing)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.NotifyPayload{Kind: models.NotifyBookingStarted, BookingID: b.ID})
	return b, nil
}

// MarkReady moves a paid booking to ready once the venue is prepared.
func (s *DefaultBookingService) MarkReady(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.transition(ctx, actor, id, models.StatusPaid, models.StatusReady)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.NotifyPayload{Kind: models.NotifyBookingReady, BookingID: b.ID})
	return b, nil
}

// Finish closes out a ready booking, releasing its dates.
func (s *DefaultBookingService) Finish(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.transition(ctx, actor, id, models.StatusReady, models.StatusFinished)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.NotifyPayload{Kind: models.NotifyBookingFinished, BookingID: b.ID})
	return b, nil
}

// Rate records a one-time rating on a finished booking. Only the booking's
// customer may rate.
func (s *DefaultBookingService) Rate(ctx context.Context, actor models.Actor, id string, rating int, comment string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleCustomer || b.CustomerID != actor.ID {
		return nil, &AuthorizationError{Message: "only the booking's customer can rate it"}
	}
	if b.Status != models.StatusFinished {
		return nil, &ConflictError{Message: "only finished bookings can be rated"}
	}
	if b.RatedAt != nil {
		return nil, &ConflictError{Message: "booking is already rated"}
	}

	at := s.now().UTC()
	err = s.bookingRepo.SetRating(ctx, id, rating, comment, at)
	if errors.Is(err, bookingRepo.ErrAlreadyRated) {
		return nil, &ConflictError{Message: "booking is already rated"}
	}
	if err != nil {
		return nil, err
	}

	b.Rating = rating
	b.Comment = comment
	b.RatedAt = &at
	return b, nil
}

// transition performs an authorized compare-and-set status move and returns
// the booking as persisted after the move.
func (s *DefaultBookingService) transition(ctx context.Context, actor models.Actor, id string, from, to models.BookingStatus) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canActOnVenue(actor, b.VenueID) {
		return nil, &AuthorizationError{Message: "not authorized for this venue"}
	}
	if b.Status != from {
		return nil, &ConflictError{Message: fmt.Sprintf("booking is %s, expected %s", b.Status, from)}
	}

	at := s.now().UTC()
	err = s.bookingRepo.Transition(ctx, id, from, to, at, nil)
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		return nil, &ConflictError{Message: fmt.Sprintf("booking changed concurrently, no longer %s", from)}
	}
	if err != nil {
		return nil, err
	}

	b.Status = to
	switch to {
	case models.StatusApproved:
		b.ApprovedAt = &at
	case models.StatusOngoing:
		b.StartedAt = &at
	case models.StatusPaid:
		b.PaidAt = &at
	case models.StatusReady:
		b.ReadyAt = &at
	case models.StatusFinished:
		b.FinishedAt = &at
	}

	utils.GetLogger().Info("Booking transitioned",
		zap.String("bookingID", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actorID", actor.ID))
	return b, nil
}

func (s *DefaultBookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, &NotFoundError{Resource: "booking", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
