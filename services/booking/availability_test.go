package booking

import (
	"context"
	"testing"

	"haven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical single day", "2024-06-10", "2024-06-10", "2024-06-10", "2024-06-10", true},
		{"single day inside multi-day", "2024-06-11", "2024-06-11", "2024-06-10", "2024-06-12", true},
		{"multi-day covering single day", "2024-06-10", "2024-06-12", "2024-06-11", "2024-06-11", true},
		{"shared boundary day", "2024-06-10", "2024-06-12", "2024-06-12", "2024-06-14", true},
		{"partial overlap", "2024-06-10", "2024-06-13", "2024-06-12", "2024-06-15", true},
		{"adjacent, no shared day", "2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", false},
		{"fully disjoint", "2024-06-01", "2024-06-05", "2024-06-20", "2024-06-25", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rangesOverlap(date(tc.aStart), date(tc.aEnd), date(tc.bStart), date(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tc.want, rangesOverlap(date(tc.bStart), date(tc.bEnd), date(tc.aStart), date(tc.aEnd)))
		})
	}
}

func TestIsRangeAvailable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	env.seedBooking(&models.Booking{
		ID: "b1", VenueID: "v1", Status: models.StatusApproved,
		StartDate: date("2024-06-10"), EndDate: date("2024-06-12"),
	})

	ok, err := env.svc.IsRangeAvailable(ctx, "v1", date("2024-06-11"), date("2024-06-11"))
	require.NoError(t, err)
	assert.False(t, ok, "single day inside an approved range must conflict")

	ok, err = env.svc.IsRangeAvailable(ctx, "v1", date("2024-06-13"), date("2024-06-15"))
	require.NoError(t, err)
	assert.True(t, ok)

	// Other venues are unaffected.
	ok, err = env.svc.IsRangeAvailable(ctx, "v2", date("2024-06-11"), date("2024-06-11"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFinishedBookingReleasesDates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	env.seedBooking(&models.Booking{
		ID: "b1", VenueID: "v1", Status: models.StatusFinished,
		StartDate: date("2024-06-10"), EndDate: date("2024-06-12"),
	})

	ok, err := env.svc.IsRangeAvailable(ctx, "v1", date("2024-06-10"), date("2024-06-12"))
	require.NoError(t, err)
	assert.True(t, ok, "finished bookings must not block the calendar")
}

func TestBookedRanges(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	env.seedBooking(&models.Booking{
		ID: "b1", VenueID: "v1", Status: models.StatusPending,
		StartDate: date("2024-07-01"), EndDate: date("2024-07-02"),
	})
	env.seedBooking(&models.Booking{
		ID: "b2", VenueID: "v1", Status: models.StatusFinished,
		StartDate: date("2024-06-01"), EndDate: date("2024-06-01"),
	})

	ranges, err := env.svc.BookedRanges(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, date("2024-07-01"), ranges[0].Start)
	assert.Equal(t, date("2024-07-02"), ranges[0].End)
}
