package booking

import (
	"context"
	"testing"

	"haven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerX = models.Actor{ID: "o1", Role: models.RoleOwner, VenueAssigned: "v1"}
	ownerY = models.Actor{ID: "o2", Role: models.RoleOwner, VenueAssigned: "v2"}
	admin  = models.Actor{ID: "a1", Role: models.RoleAdmin}
)

func seedPending(env *testEnv) *models.Booking {
	return env.seedBooking(&models.Booking{
		ID: "b1", VenueID: "v1", CustomerID: "c1",
		CustomerEmail: "cara@example.com", CustomerName: "Cara Reyes",
		StartDate: date("2024-06-10"), EndDate: date("2024-06-12"),
		TotalAmount: 60000, Status: models.StatusPending,
	})
}

func TestFullLifecycleWalk(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	b, err := env.svc.Approve(ctx, ownerX, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, b.Status)
	require.NotNil(t, b.ApprovedAt)

	b, err = env.svc.Start(ctx, ownerX, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOngoing, b.Status)
	require.NotNil(t, b.StartedAt)

	b, err = env.svc.PayInApp(ctx, models.Actor{ID: "c1", Role: models.RoleCustomer}, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, b.Status)
	require.NotNil(t, b.PaidAt)

	b, err = env.svc.MarkReady(ctx, ownerX, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, b.Status)

	b, err = env.svc.Finish(ctx, ownerX, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, b.Status)
	require.NotNil(t, b.FinishedAt)

	// Statuses observed along the walk never ranked backwards.
	assert.Equal(t, models.StatusFinished.Rank(), b.Status.Rank())
}

func TestApproveIsNotReentrant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	first, err := env.svc.Approve(ctx, ownerX, "b1")
	require.NoError(t, err)
	approvedAt := *first.ApprovedAt

	// A second approve (stale double click) reports a conflict and mutates
	// nothing.
	_, err = env.svc.Approve(ctx, ownerX, "b1")
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)

	stored, err := env.bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedAt)
	assert.Equal(t, approvedAt, *stored.ApprovedAt, "timestamp must be set exactly once")
}

func TestOwnerRestrictedToAssignedVenue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	_, err := env.svc.Approve(ctx, ownerY, "b1")
	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)

	stored, err := env.bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status, "rejected action must not mutate")
}

func TestAdminMayActOnAnyVenue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	b, err := env.svc.Approve(ctx, admin, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, b.Status)
}

func TestCustomerCannotTransition(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	_, err := env.svc.Approve(ctx, models.Actor{ID: "c1", Role: models.RoleCustomer}, "b1")
	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)
}

func TestSkippingStatesRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	// pending -> ready skips approved/ongoing/paid.
	_, err := env.svc.MarkReady(ctx, ownerX, "b1")
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)

	stored, err := env.bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.ReadyAt)
}

func TestRateOnlyWhenFinished(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)
	cust := models.Actor{ID: "c1", Role: models.RoleCustomer}

	_, err := env.svc.Rate(ctx, cust, "b1", 5, "lovely")
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestRateOnceByBookingCustomer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	env.seedBooking(&models.Booking{
		ID: "b1", VenueID: "v1", CustomerID: "c1",
		StartDate: date("2024-06-10"), EndDate: date("2024-06-10"),
		Status: models.StatusFinished,
	})
	cust := models.Actor{ID: "c1", Role: models.RoleCustomer}

	// Another customer cannot rate.
	_, err := env.svc.Rate(ctx, models.Actor{ID: "c2", Role: models.RoleCustomer}, "b1", 4, "")
	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)

	b, err := env.svc.Rate(ctx, cust, "b1", 5, "lovely")
	require.NoError(t, err)
	assert.Equal(t, 5, b.Rating)
	require.NotNil(t, b.RatedAt)

	// Rating is write-once.
	_, err = env.svc.Rate(ctx, cust, "b1", 1, "changed my mind")
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)

	stored, err := env.bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "lovely", stored.Comment)
}

func TestRateRangeValidated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})

	_, err := env.svc.Rate(ctx, models.Actor{ID: "c1", Role: models.RoleCustomer}, "b1", 6, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestGetBookingVisibility(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	// The booking's customer sees it.
	_, err := env.svc.GetBooking(ctx, models.Actor{ID: "c1", Role: models.RoleCustomer}, "b1")
	require.NoError(t, err)

	// A different customer does not.
	_, err = env.svc.GetBooking(ctx, models.Actor{ID: "c2", Role: models.RoleCustomer}, "b1")
	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)

	// An owner of another venue does not.
	_, err = env.svc.GetBooking(ctx, ownerY, "b1")
	require.ErrorAs(t, err, &aErr)

	// Missing bookings are reported as such.
	_, err = env.svc.GetBooking(ctx, admin, "ghost")
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestListVenueBookingsAuthorization(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	bookings, err := env.svc.ListVenueBookings(ctx, ownerX, "v1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = env.svc.ListVenueBookings(ctx, ownerY, "v1")
	var aErr *AuthorizationError
	require.ErrorAs(t, err, &aErr)
}

func TestTransitionNotifications(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&models.Venue{ID: "v1", Name: "Garden Hall", PricePerDay: 20000})
	seedPending(env)

	_, err := env.svc.Approve(ctx, ownerX, "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, env.notifier.countKind(models.NotifyBookingApproved))

	_, err = env.svc.Start(ctx, ownerX, "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, env.notifier.countKind(models.NotifyBookingStarted))
}
