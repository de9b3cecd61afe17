package bookingRepo

import (
	"testing"
	"time"

	"haven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingDocRoundTrip(t *testing.T) {
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	b := models.Booking{
		ID:        "b1",
		VenueID:   "v1",
		StartDate: start,
		EndDate:   end,
		Status:    models.StatusPending,
	}

	doc := toDoc(&b)
	assert.Equal(t, "2024-06-10", doc.StartDate)
	assert.Equal(t, "2024-06-12", doc.EndDate)

	got, err := doc.toModel()
	require.NoError(t, err)
	assert.Equal(t, start, got.StartDate)
	assert.Equal(t, end, got.EndDate)
}

func TestParseStoredDateAcceptsLegacyTimestamps(t *testing.T) {
	// Records written by older clients carry full RFC 3339 timestamps; they
	// normalize to the calendar day.
	got, err := parseStoredDate("2024-06-10T14:30:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = parseStoredDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestParseStoredDateRejectsGarbage(t *testing.T) {
	_, err := parseStoredDate("next tuesday")
	assert.Error(t, err)

	doc := bookingDoc{Booking: models.Booking{ID: "b1"}, StartDate: "bad", EndDate: "2024-06-10"}
	_, err = doc.toModel()
	assert.Error(t, err)
}
