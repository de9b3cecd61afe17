package booking

import (
	"context"
	"testing"

	"haven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	env.seedBooking(&models.Booking{
		ID: "b1", VenueID: "v1", Status: models.StatusPending,
		StartDate: date("2024-06-10"), EndDate: date("2024-06-10"), TotalAmount: 20000,
	})
	env.seedBooking(&models.Booking{
		ID: "b2", VenueID: "v1", Status: models.StatusPaid,
		StartDate: date("2024-06-20"), EndDate: date("2024-06-21"), TotalAmount: 40000,
	})
	env.seedBooking(&models.Booking{
		ID: "b3", VenueID: "v1", Status: models.StatusFinished,
		StartDate: date("2024-07-01"), EndDate: date("2024-07-01"), TotalAmount: 20000,
	})

	stats, err := env.svc.VenueStats(ctx, ownerX, "v1", 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Finished)
	// Pending bookings carry no realized revenue.
	assert.Equal(t, float64(60000), stats.TotalRevenue)

	require.Len(t, stats.Monthly, 2)
	assert.Equal(t, 6, stats.Monthly[0].Month)
	assert.Equal(t, float64(40000), stats.Monthly[0].Revenue)
	assert.Equal(t, 7, stats.Monthly[1].Month)
}

func TestVenueStatsAuthorization(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	_, err := env.svc.VenueStats(ctx, ownerY, "v1", 2024)
	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)
}
