// Package notification delivers booking emails and push messages. It sits
// behind the outbox worker: delivery is retried by the queue, and failures
// here never affect the booking state that triggered them.
package notification

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "haven/database/repository/booking"
	userRepo "haven/database/repository/user"
	venueRepo "haven/database/repository/venue"
	"haven/models"
	"haven/utils"

	"go.uber.org/zap"
)

// Service renders and delivers booking notifications.
type Service struct {
	bookings bookingRepo.BookingRepository
	users    userRepo.UserRepository
	venues   venueRepo.VenueRepository
}

// NewService wires a notification service over the repositories it needs to
// resolve recipients and venue names.
func NewService(bookings bookingRepo.BookingRepository, users userRepo.UserRepository, venues venueRepo.VenueRepository) *Service {
	return &Service{bookings: bookings, users: users, venues: venues}
}

// Dispatch delivers one booking notification. A booking deleted since the
// event was queued is not an error; the event is simply dropped.
func (s *Service) Dispatch(ctx context.Context, payload models.NotifyPayload) error {
	b, err := s.bookings.GetByID(ctx, payload.BookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		utils.GetLogger().Warn("Dropping notification for missing booking",
			zap.String("bookingID", payload.BookingID),
			zap.String("kind", payload.Kind))
		return nil
	}
	if err != nil {
		return err
	}

	venueName := b.VenueID
	if venue, err := s.venues.GetByID(ctx, b.VenueID); err == nil {
		venueName = venue.Name
	}

	switch payload.Kind {
	case models.NotifyBookingCreated:
		return s.notifyOwner(ctx, b, venueName)
	case models.NotifyBookingApproved:
		return s.notifyCustomer(ctx, b, venueName,
			"Your booking is approved",
			fmt.Sprintf("Your booking at %s on %s has been approved.", venueName, b.StartDate.Format("January 2, 2006")))
	case models.NotifyBookingStarted:
		return s.notifyCustomer(ctx, b, venueName,
			"Your event is underway",
			fmt.Sprintf("Your event at %s has started. Payment is now open.", venueName))
	case models.NotifyBookingReady:
		return s.notifyCustomer(ctx, b, venueName,
			"Your venue is ready",
			fmt.Sprintf("%s is set up and ready for your event.", venueName))
	case models.NotifyBookingFinished:
		return s.notifyCustomer(ctx, b, venueName,
			"Thanks for celebrating with us",
			fmt.Sprintf("Your event at %s is complete. We'd love to hear your rating.", venueName))
	case models.NotifyPaymentReceipt:
		if payload.Receipt == nil {
			return fmt.Errorf("payment receipt notification without receipt for booking %s", b.ID)
		}
		return s.sendReceipt(ctx, b, *payload.Receipt)
	default:
		return fmt.Errorf("unknown notification kind %q", payload.Kind)
	}
}

// notifyCustomer emails the booking's customer and, when they have a device
// token on file, mirrors the message as a push notification.
func (s *Service) notifyCustomer(ctx context.Context, b *models.Booking, venueName, subject, body string) error {
	if err := s.sendEmail(ctx, b.CustomerEmail, subject, statusEmailHTML(b, venueName, body)); err != nil {
		return err
	}
	s.pushToUser(ctx, b.CustomerID, subject, body)
	return nil
}

// notifyOwner alerts the venue's assigned owner about a new pending booking.
func (s *Service) notifyOwner(ctx context.Context, b *models.Booking, venueName string) error {
	owners, err := s.users.ListByRole(ctx, string(models.RoleOwner))
	if err != nil {
		return err
	}
	subject := "New booking request"
	body := fmt.Sprintf("%s requested %s from %s to %s.",
		b.CustomerName, venueName,
		b.StartDate.Format("Jan 2, 2006"), b.EndDate.Format("Jan 2, 2006"))
	for _, owner := range owners {
		if owner.VenueAssigned != b.VenueID {
			continue
		}
		if err := s.sendEmail(ctx, owner.Email, subject, statusEmailHTML(b, venueName, body)); err != nil {
			return err
		}
		s.pushToUser(ctx, owner.ID, subject, body)
	}
	return nil
}

func (s *Service) sendReceipt(ctx context.Context, b *models.Booking, receipt models.Receipt) error {
	subject := fmt.Sprintf("Payment receipt %s", receipt.Reference)
	if err := s.sendEmail(ctx, receipt.CustomerEmail, subject, receiptEmailHTML(receipt)); err != nil {
		return err
	}
	s.pushToUser(ctx, b.CustomerID, "Payment received",
		fmt.Sprintf("We received your payment of PHP %.2f. Receipt %s.", receipt.TotalAmount, receipt.Reference))
	return nil
}
