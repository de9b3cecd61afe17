package menuRepo

import (
	"context"
	"errors"

	"haven/models"
)

// ErrNotFound is returned when no menu item matches the given id.
var ErrNotFound = errors.New("menu item not found")

// MenuRepository defines data access for catering menu items.
type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByIDs(ctx context.Context, ids []string) ([]models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
}
