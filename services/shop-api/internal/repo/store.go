package repo

import (
	"context"
	"errors"

	"purem-oda-shop/shared/pkg/models"
)

// ErrCorrupt means the backing data exists but cannot be decoded as items.
var ErrCorrupt = errors.New("item store corrupt")

// ItemStore persists the whole item collection at once. There is no
// indexing: every operation materializes the full slice.
type ItemStore interface {
	Load(ctx context.Context) ([]models.Item, error)
	Save(ctx context.Context, items []models.Item) error
}
