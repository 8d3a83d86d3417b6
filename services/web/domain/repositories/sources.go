// Package repositories declares the remote sources the create-point page
// reads from and writes to.
package repositories

import (
	"context"

	"github.com/ghuser/ecoleta/services/web/domain/models"
)

// ItemCatalog lists the recyclable item categories.
type ItemCatalog interface {
	ListItems(ctx context.Context) ([]models.Item, error)
}

// Geography lists Brazilian states and their municipalities.
type Geography interface {
	States(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, uf string) ([]string, error)
}

// PointRegistry registers collection points.
type PointRegistry interface {
	CreatePoint(ctx context.Context, sub models.Submission, image *models.Image) (*models.CreatedPoint, error)
}
