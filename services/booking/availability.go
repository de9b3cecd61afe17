package booking

import (
	"context"
	"fmt"
	"time"

	"haven/models"
)

// blockingStatuses are the statuses that hold a venue's dates. A finished
// booking releases its range.
var blockingStatuses = []models.BookingStatus{
	models.StatusPending,
	models.StatusApproved,
	models.StatusOngoing,
	models.StatusPaid,
	models.StatusReady,
}

// DateRange is a closed calendar-day interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// rangesOverlap reports whether two closed day ranges share at least one day.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// IsRangeAvailable reports whether the closed date range [start, end] on the
// given venue is free of any blocking booking. Ranges touching on a shared
// day conflict; comparisons are calendar-day only.
func (s *DefaultBookingService) IsRangeAvailable(ctx context.Context, venueID string, start, end time.Time) (bool, error) {
	existing, err := s.bookingRepo.ListByVenueAndStatuses(ctx, venueID, blockingStatuses)
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	for _, b := range existing {
		if rangesOverlap(start, end, b.StartDate, b.EndDate) {
			return false, nil
		}
	}
	return true, nil
}

// BookedRanges returns the date ranges currently blocking a venue, for
// calendar display.
func (s *DefaultBookingService) BookedRanges(ctx context.Context, venueID string) ([]DateRange, error) {
	existing, err := s.bookingRepo.ListByVenueAndStatuses(ctx, venueID, blockingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked ranges: %w", err)
	}
	ranges := make([]DateRange, 0, len(existing))
	for _, b := range existing {
		ranges = append(ranges, DateRange{Start: b.StartDate, End: b.EndDate})
	}
	return ranges, nil
}
