package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "haven/database/repository/booking"
	"haven/models"
)

// memBookingRepo is an in-memory BookingRepository used across the service
// tests. It mirrors the Mongo implementation's conditional-update semantics.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) ListByVenue(_ context.Context, venueID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.VenueID == venueID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByVenueAndStatuses(_ context.Context, venueID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.VenueID != venueID {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				out = append(out, *b)
				break
			}
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) Transition(_ context.Context, id string, from, to models.BookingStatus, at time.Time, extra map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	switch to {
	case models.StatusApproved:
		b.ApprovedAt = &at
	case models.StatusOngoing:
		b.StartedAt = &at
	case models.StatusPaid:
		b.PaidAt = &at
	case models.StatusReady:
		b.ReadyAt = &at
	case models.StatusFinished:
		b.FinishedAt = &at
	}
	if method, ok := extra["payment_method"].(string); ok {
		b.PaymentMethod = method
	}
	return nil
}

func (r *memBookingRepo) SetRating(_ context.Context, id string, rating int, comment string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusFinished || b.RatedAt != nil {
		return bookingRepo.ErrAlreadyRated
	}
	b.Rating = rating
	b.Comment = comment
	b.RatedAt = &at
	return nil
}

func (r *memBookingRepo) MergeCheckout(_ context.Context, id, checkoutSessionID, paymentMethod string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.CheckoutSessionID = checkoutSessionID
	b.PaymentMethod = paymentMethod
	return nil
}

func (r *memBookingRepo) UpsertCheckout(_ context.Context, draft *models.Booking, checkoutSessionID, paymentMethod string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[draft.ID]
	if !ok {
		cp := *draft
		b = &cp
		r.bookings[draft.ID] = b
	}
	b.CheckoutSessionID = checkoutSessionID
	b.PaymentMethod = paymentMethod
	return nil
}

func (r *memBookingRepo) MonthlyStats(_ context.Context, venueID string, year int) ([]bookingRepo.MonthlyStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byMonth := make(map[int]*bookingRepo.MonthlyStat)
	for _, b := range r.bookings {
		if b.VenueID != venueID || b.StartDate.Year() != year {
			continue
		}
		m := int(b.StartDate.Month())
		stat, ok := byMonth[m]
		if !ok {
			stat = &bookingRepo.MonthlyStat{Month: m}
			byMonth[m] = stat
		}
		stat.Bookings++
		if b.Status.Rank() >= models.StatusPaid.Rank() {
			stat.Revenue += b.TotalAmount
		}
	}
	var out []bookingRepo.MonthlyStat
	for m := 1; m <= 12; m++ {
		if stat, ok := byMonth[m]; ok {
			out = append(out, *stat)
		}
	}
	return out, nil
}

type memVenueRepo struct {
	venues map[string]*models.Venue
}

func newMemVenueRepo(venues ...*models.Venue) *memVenueRepo {
	r := &memVenueRepo{venues: make(map[string]*models.Venue)}
	for _, v := range venues {
		r.venues[v.ID] = v
	}
	return r
}

func (r *memVenueRepo) Create(_ context.Context, v *models.Venue) error {
	r.venues[v.ID] = v
	return nil
}

func (r *memVenueRepo) GetByID(_ context.Context, id string) (*models.Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, fmt.Errorf("venue not found")
	}
	cp := *v
	return &cp, nil
}

func (r *memVenueRepo) List(_ context.Context) ([]models.Venue, error) {
	var out []models.Venue
	for _, v := range r.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVenueRepo) Update(_ context.Context, v *models.Venue) error {
	r.venues[v.ID] = v
	return nil
}

func (r *memVenueRepo) Delete(_ context.Context, id string) error {
	delete(r.venues, id)
	return nil
}

func (r *memVenueRepo) AddImage(_ context.Context, id, imageURL string) error {
	v, ok := r.venues[id]
	if !ok {
		return fmt.Errorf("venue not found")
	}
	v.Images = append(v.Images, imageURL)
	return nil
}

type memMenuRepo struct {
	items map[string]*models.MenuItem
}

func newMemMenuRepo(items ...*models.MenuItem) *memMenuRepo {
	r := &memMenuRepo{items: make(map[string]*models.MenuItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *memMenuRepo) Create(_ context.Context, item *models.MenuItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *memMenuRepo) GetByIDs(_ context.Context, ids []string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memMenuRepo) List(_ context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memMenuRepo) Update(_ context.Context, item *models.MenuItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *memMenuRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// fakeHolidays serves a fixed holiday list.
type fakeHolidays struct {
	holidays []models.Holiday
	err      error
}

func (f *fakeHolidays) HolidaysInRange(_ context.Context, start, end time.Time) ([]models.Holiday, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Holiday
	for _, h := range f.holidays {
		day, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeCheckout records created sessions and can be told to fail.
type fakeCheckout struct {
	calls []CheckoutInput
	err   error
}

func (f *fakeCheckout) CreateSession(_ context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, in)
	var total int64
	for _, li := range in.LineItems {
		total += li.AmountCentavos * li.Quantity
	}
	return &CheckoutSession{
		ID:          fmt.Sprintf("cs_test_%d", len(f.calls)),
		URL:         "https://checkout.example/session",
		AmountTotal: total,
	}, nil
}

// fakeNotifier records enqueued booking events.
type fakeNotifier struct {
	events []models.NotifyPayload
}

func (f *fakeNotifier) EnqueueBookingEvent(_ context.Context, payload models.NotifyPayload) error {
	f.events = append(f.events, payload)
	return nil
}

func (f *fakeNotifier) countKind(kind string) int {
	n := 0
	for _, e := range f.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// testEnv bundles a service wired entirely to in-memory collaborators.
type testEnv struct {
	svc      *DefaultBookingService
	bookings *memBookingRepo
	venues   *memVenueRepo
	menu     *memMenuRepo
	holidays *fakeHolidays
	checkout *fakeCheckout
	notifier *fakeNotifier
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// testNow is the fixed clock for all service tests.
var testNow = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func newTestEnv(venues ...*models.Venue) *testEnv {
	env := &testEnv{
		bookings: newMemBookingRepo(),
		venues:   newMemVenueRepo(venues...),
		menu:     newMemMenuRepo(),
		holidays: &fakeHolidays{},
		checkout: &fakeCheckout{},
		notifier: &fakeNotifier{},
	}
	env.svc = NewBookingService(env.bookings, env.venues, env.menu, env.holidays, env.checkout, env.notifier)
	env.svc.now = func() time.Time { return testNow }
	return env
}

// seedBooking plants a booking directly in the repository.
func (env *testEnv) seedBooking(b *models.Booking) *models.Booking {
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = testNow
	}
	if err := env.bookings.Create(context.Background(), b); err != nil {
		panic(err)
	}
	return b
}
