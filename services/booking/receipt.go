package booking

import (
	"context"
	"strings"
	"time"

	"haven/models"

	"github.com/google/uuid"
)

// buildReceipt assembles the receipt document for a paid booking. The venue
// name is best effort; the receipt is still issued if the venue lookup fails.
func (s *DefaultBookingService) buildReceipt(ctx context.Context, b *models.Booking, paidAt time.Time) models.Receipt {
	venueName := b.VenueID
	if venue, err := s.venueRepo.GetByID(ctx, b.VenueID); err == nil {
		venueName = venue.Name
	}
	ref := "RCPT-" + strings.ToUpper(uuid.New().String()[:8])
	return models.Receipt{
		Reference:     ref,
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		VenueName:     venueName,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		TotalAmount:   b.TotalAmount,
		Currency:      "PHP",
		IssuedAt:      paidAt,
	}
}
