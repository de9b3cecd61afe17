package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	bookingRepo "haven/database/repository/booking"
	"haven/models"
	"haven/utils"

	"go.uber.org/zap"
)

// Payment methods recorded on a booking.
const (
	PaymentMethodCheckout = "checkout"
	PaymentMethodCard     = "card"
)

// CheckoutLineItem is one priced line on an external checkout session.
// Amounts are in centavos.
type CheckoutLineItem struct {
	Name           string
	AmountCentavos int64
	Quantity       int64
}

// CheckoutInput describes the session to open with the checkout provider.
type CheckoutInput struct {
	LineItems     []CheckoutLineItem
	CustomerEmail string
	Metadata      map[string]string
}

// CheckoutSession is the provider's handle for a hosted payment page.
type CheckoutSession struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	AmountTotal int64  `json:"amountTotal"`
}

// CheckoutClient opens hosted checkout sessions with the payment provider.
type CheckoutClient interface {
	CreateSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
}

// Centavos converts a PHP amount to the provider's integer minor unit.
// Rounded, not truncated, so fractional pesos never drop a centavo.
func Centavos(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckout opens a hosted checkout session for an ongoing booking and
// merges the session id onto the booking record. The charged amount is the
// booking's frozen total, never a recomputed price.
func (s *DefaultBookingService) CreateCheckout(ctx context.Context, actor models.Actor, id string) (*CheckoutSession, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCustomer && b.CustomerID != actor.ID {
		return nil, &AuthorizationError{Message: "booking belongs to another customer"}
	}
	if b.Status.Rank() >= models.StatusPaid.Rank() {
		return nil, &ConflictError{Message: "booking is already paid"}
	}
	if b.Status != models.StatusOngoing {
		return nil, &ConflictError{Message: fmt.Sprintf("booking is %s, payment opens once the event is ongoing", b.Status)}
	}

	venue, err := s.venueRepo.GetByID(ctx, b.VenueID)
	if err != nil {
		return nil, &NotFoundError{Resource: "venue", ID: b.VenueID}
	}

	in := CheckoutInput{
		CustomerEmail: b.CustomerEmail,
		LineItems: []CheckoutLineItem{{
			Name:           fmt.Sprintf("%s (%s to %s)", venue.Name, b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout)),
			AmountCentavos: Centavos(b.TotalAmount),
			Quantity:       1,
		}},
		Metadata: map[string]string{"booking_id": b.ID},
	}
	session, err := s.checkout.CreateSession(ctx, in)
	if err != nil {
		return nil, &ProviderError{Provider: "checkout", Err: err}
	}

	if err := s.bookingRepo.MergeCheckout(ctx, b.ID, session.ID, PaymentMethodCheckout); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Checkout session created",
		zap.String("bookingID", b.ID),
		zap.String("sessionID", session.ID))
	return session, nil
}

// ConfirmPayment reconciles a completed checkout back onto the booking,
// moving it from ongoing to paid and queuing the receipt email. Only the
// booking's customer or an admin may confirm, and a booking that carries a
// checkout session accepts only that exact session id. Confirming an
// already-paid booking is a no-op that returns the booking unchanged, so
// duplicate provider callbacks never produce a second receipt.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, actor models.Actor, id, sessionID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && b.CustomerID != actor.ID {
		return nil, &AuthorizationError{Message: "only the booking's customer can confirm payment"}
	}
	if b.Status.Rank() >= models.StatusPaid.Rank() {
		return b, nil
	}
	if b.Status != models.StatusOngoing {
		return nil, &ConflictError{Message: fmt.Sprintf("booking is %s, cannot confirm payment", b.Status)}
	}
	if b.CheckoutSessionID != "" && b.CheckoutSessionID != sessionID {
		return nil, &ValidationError{Field: "sessionId", Message: "does not match the booking's checkout session"}
	}

	method := b.PaymentMethod
	if method == "" {
		method = PaymentMethodCheckout
	}
	return s.markPaid(ctx, b, method)
}

// PayInApp records an in-app card payment, moving the booking from ongoing
// to paid without an external checkout session.
func (s *DefaultBookingService) PayInApp(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleCustomer || b.CustomerID != actor.ID {
		return nil, &AuthorizationError{Message: "only the booking's customer can pay"}
	}
	if b.Status.Rank() >= models.StatusPaid.Rank() {
		return b, nil
	}
	if b.Status != models.StatusOngoing {
		return nil, &ConflictError{Message: fmt.Sprintf("booking is %s, cannot pay", b.Status)}
	}
	return s.markPaid(ctx, b, PaymentMethodCard)
}

func (s *DefaultBookingService) markPaid(ctx context.Context, b *models.Booking, method string) (*models.Booking, error) {
	at := s.now().UTC()
	extra := map[string]any{"payment_method": method}
	err := s.bookingRepo.Transition(ctx, b.ID, models.StatusOngoing, models.StatusPaid, at, extra)
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		// Lost the race to another confirmation; surface the winner's state.
		return s.loadBooking(ctx, b.ID)
	}
	if err != nil {
		return nil, err
	}

	b.Status = models.StatusPaid
	b.PaidAt = &at
	b.PaymentMethod = method

	receipt := s.buildReceipt(ctx, b, at)
	s.notify(ctx, models.NotifyPayload{
		Kind:      models.NotifyPaymentReceipt,
		BookingID: b.ID,
		Receipt:   &receipt,
	})

	utils.GetLogger().Info("Booking paid",
		zap.String("bookingID", b.ID),
		zap.String("method", method),
		zap.Float64("amount", b.TotalAmount))
	return b, nil
}
