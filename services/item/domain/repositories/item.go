package repositories

import (
	"context"

	"github.com/ghuser/ecoleta/services/item/domain/models"
)

// ItemRepository is the persistence interface for the item catalogue.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// ListAll returns every item ordered by id.
	ListAll(ctx context.Context) ([]*models.Item, error)
}
