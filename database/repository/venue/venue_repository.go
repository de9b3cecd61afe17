package venueRepo

import (
	"context"
	"errors"

	"haven/models"
)

// ErrNotFound is returned when no venue matches the given id.
var ErrNotFound = errors.New("venue not found")

// VenueRepository defines data access for venues.
type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id string) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id, imageURL string) error
}
