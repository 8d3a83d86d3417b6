package repositories

import (
	"context"

	"github.com/ghuser/ecoleta/services/point/domain/models"
)

// PointFilter narrows List. Zero values match everything; a point matches
// ItemIDs when it accepts any of them.
type PointFilter struct {
	City    string
	UF      string
	ItemIDs []int64
}

// PointRepository is the persistence interface for the Point aggregate.
// The domain layer owns this interface; infrastructure implements it.
type PointRepository interface {
	// Save inserts the point and its item associations atomically and sets p.ID.
	Save(ctx context.Context, p *models.Point) error

	// GetDetail returns the point with its accepted items.
	// Returns ErrPointNotFound when no row matches.
	GetDetail(ctx context.Context, id int64) (*models.PointDetail, error)

	// List returns the points matching filter ordered by id.
	List(ctx context.Context, filter PointFilter) ([]*models.Point, error)
}
