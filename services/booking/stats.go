package booking

import (
	"context"

	bookingRepo "haven/database/repository/booking"
	"haven/models"
)

// VenueStats is the owner dashboard summary for one venue and year.
type VenueStats struct {
	VenueID      string                    `json:"venueId"`
	Year         int                       `json:"year"`
	TotalRevenue float64                   `json:"totalRevenue"`
	Pending      int                       `json:"pending"`
	Active       int                       `json:"active"`
	Finished     int                       `json:"finished"`
	Monthly      []bookingRepo.MonthlyStat `json:"monthly"`
}

// VenueStats aggregates booking counts and realized revenue for a venue.
// Revenue only counts bookings that reached paid or later.
func (s *DefaultBookingService) VenueStats(ctx context.Context, actor models.Actor, venueID string, year int) (*VenueStats, error) {
	if !canActOnVenue(actor, venueID) {
		return nil, &AuthorizationError{Message: "not authorized for this venue"}
	}

	monthly, err := s.bookingRepo.MonthlyStats(ctx, venueID, year)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	stats := &VenueStats{VenueID: venueID, Year: year, Monthly: monthly}
	for _, b := range bookings {
		switch {
		case b.Status == models.StatusPending:
			stats.Pending++
		case b.Status == models.StatusFinished:
			stats.Finished++
		default:
			stats.Active++
		}
		if b.Status.Rank() >= models.StatusPaid.Rank() {
			stats.TotalRevenue += b.TotalAmount
		}
	}
	return stats, nil
}
