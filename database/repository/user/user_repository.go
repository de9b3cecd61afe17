package userRepo

import (
	"context"
	"errors"

	"haven/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when registering an email already on file.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	AssignVenue(ctx context.Context, id, venueID string) error
	SetFCMToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}
