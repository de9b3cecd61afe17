package booking

import (
	"context"
	"testing"

	"haven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuoteMultiDay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	draft := &models.Booking{
		VenueID:   "v1",
		StartDate: date("2024-06-10"),
		EndDate:   date("2024-06-12"),
	}
	q, err := env.svc.ComputeQuote(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Days)
	assert.Equal(t, float64(60000), q.Total)
}

func TestComputeQuoteSingleDayWithAddOns(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	env.menu.items["m1"] = &models.MenuItem{ID: "m1", Name: "Lechon", Price: 8000}
	env.menu.items["m2"] = &models.MenuItem{ID: "m2", Name: "Pancit", Price: 2000}

	draft := &models.Booking{
		VenueID:            "v1",
		StartDate:          date("2024-06-10"),
		EndDate:            date("2024-06-10"),
		PhotographyPackage: "pkg2",
		Balloons:           true,
		MenuItemIDs:        []string{"m1", "m2"},
	}
	q, err := env.svc.ComputeQuote(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, float64(20000), q.VenueTotal)
	assert.Equal(t, float64(55000), q.PhotographyTotal)
	assert.Equal(t, float64(15000), q.BalloonsTotal)
	assert.Equal(t, float64(10000), q.MenuTotal)
	assert.Equal(t, float64(100000), q.Total)
}

func TestComputeQuotePhotographyTiers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 0})

	want := map[string]float64{
		"pkg1": 45000,
		"pkg2": 55000,
		"pkg3": 65000,
		"pkg4": 75000,
	}
	for pkg, price := range want {
		draft := &models.Booking{
			VenueID:            "v1",
			StartDate:          date("2024-06-10"),
			EndDate:            date("2024-06-10"),
			PhotographyPackage: pkg,
		}
		q, err := env.svc.ComputeQuote(ctx, draft)
		require.NoError(t, err, pkg)
		assert.Equal(t, price, q.PhotographyTotal, pkg)
	}
}

func TestComputeQuoteUnknownPackage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	draft := &models.Booking{
		VenueID:            "v1",
		StartDate:          date("2024-06-10"),
		EndDate:            date("2024-06-10"),
		PhotographyPackage: "pkg9",
	}
	_, err := env.svc.ComputeQuote(ctx, draft)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestComputeQuoteUnknownMenuItem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	draft := &models.Booking{
		VenueID:     "v1",
		StartDate:   date("2024-06-10"),
		EndDate:     date("2024-06-10"),
		MenuItemIDs: []string{"missing"},
	}
	_, err := env.svc.ComputeQuote(ctx, draft)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "menu item", nfErr.Resource)
}

func TestComputeQuoteDeterministic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	draft := &models.Booking{
		VenueID:   "v1",
		StartDate: date("2024-06-10"),
		EndDate:   date("2024-06-12"),
	}
	q1, err := env.svc.ComputeQuote(ctx, draft)
	require.NoError(t, err)
	q2, err := env.svc.ComputeQuote(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
}

func TestFrozenTotalSurvivesPriceChange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	actor := models.Actor{ID: "c1", Email: "c@example.com", Name: "Cara", Role: models.RoleCustomer}

	b, err := env.svc.CreateBooking(ctx, actor, &models.BookingRequest{
		VenueID:   "v1",
		StartDate: "2024-06-10",
		EndDate:   "2024-06-12",
	})
	require.NoError(t, err)
	require.Equal(t, float64(60000), b.TotalAmount)

	// Raise the venue rate after the booking is stored.
	env.venues.venues["v1"].PricePerDay = 50000

	stored, err := env.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(60000), stored.TotalAmount, "stored total must not track catalog changes")
}
