package booking

import (
	"context"
	"fmt"

	"haven/models"
	"haven/utils"

	"go.uber.org/zap"
)

// CheckoutItem is one line of the items-based checkout initiation request.
type CheckoutItem struct {
	BookingID string  `json:"bookingId"`
	VenueID   string  `json:"venueId"`
	Quantity  int64   `json:"quantity"`
	VenueName string  `json:"venueName"`
	Price     float64 `json:"price"`
}

// ItemsCheckoutRequest is the wire body of the checkout initiation endpoint.
type ItemsCheckoutRequest struct {
	Items     []CheckoutItem `json:"items"`
	UserEmail string         `json:"userEmail"`
	UserName  string         `json:"userName"`
	Phone     string         `json:"phone,omitempty"`
}

// ItemsCheckoutResult carries the hosted checkout redirect back to the caller.
type ItemsCheckoutResult struct {
	CheckoutURL string
	SessionID   string
	TotalAmount float64
	FullName    string
}

func (r *ItemsCheckoutRequest) validate() error {
	if len(r.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	if r.UserEmail == "" {
		return &ValidationError{Field: "userEmail", Message: "is required"}
	}
	if r.UserName == "" {
		return &ValidationError{Field: "userName", Message: "is required"}
	}
	for i, item := range r.Items {
		if item.BookingID == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].bookingId", i), Message: "is required"}
		}
		if item.VenueName == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].venueName", i), Message: "is required"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be positive"}
		}
		if item.Price < 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].price", i), Message: "must not be negative"}
		}
	}
	return nil
}

// CreateItemsCheckout opens a hosted checkout session for a set of booking
// line items and merge-persists each referenced booking with the session id.
// The bookings are written only after the provider accepts the session, so a
// provider failure leaves no record beyond its prior state.
func (s *DefaultBookingService) CreateItemsCheckout(ctx context.Context, req ItemsCheckoutRequest) (*ItemsCheckoutResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var total float64
	lineItems := make([]CheckoutLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
		lineItems = append(lineItems, CheckoutLineItem{
			Name:           item.VenueName,
			AmountCentavos: Centavos(item.Price),
			Quantity:       item.Quantity,
		})
	}

	metadata := map[string]string{
		"customer_email": req.UserEmail,
		"expected_total": fmt.Sprintf("%.2f", total),
	}
	for i, item := range req.Items {
		metadata[fmt.Sprintf("booking_id_%d", i)] = item.BookingID
		metadata[fmt.Sprintf("venue_id_%d", i)] = item.VenueID
	}

	session, err := s.checkout.CreateSession(ctx, CheckoutInput{
		LineItems:     lineItems,
		CustomerEmail: req.UserEmail,
		Metadata:      metadata,
	})
	if err != nil {
		return nil, &ProviderError{Provider: "checkout", Err: err}
	}

	day := s.today()
	for _, item := range req.Items {
		draft := &models.Booking{
			ID:            item.BookingID,
			CustomerEmail: req.UserEmail,
			CustomerName:  req.UserName,
			VenueID:       item.VenueID,
			BookingType:   models.BookingSingle,
			StartDate:     day,
			EndDate:       day,
			TotalAmount:   item.Price * float64(item.Quantity),
			Status:        models.StatusPending,
			CreatedAt:     s.now().UTC(),
		}
		if err := s.bookingRepo.UpsertCheckout(ctx, draft, session.ID, PaymentMethodCheckout); err != nil {
			return nil, err
		}
	}

	utils.GetLogger().Info("Items checkout session created",
		zap.String("sessionID", session.ID),
		zap.Int("items", len(req.Items)),
		zap.Float64("total", total))
	return &ItemsCheckoutResult{
		CheckoutURL: session.URL,
		SessionID:   session.ID,
		TotalAmount: total,
		FullName:    req.UserName,
	}, nil
}
