package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/services/web/domain/models"
	"github.com/ghuser/ecoleta/services/web/domain/repositories"
)

// FormService loads the reference data of the create-point page and submits
// completed forms.
type FormService struct {
	catalog repositories.ItemCatalog
	geo     repositories.Geography
	points  repositories.PointRegistry
	log     logger.Logger
}

// NewFormService returns a FormService over the given sources.
func NewFormService(catalog repositories.ItemCatalog, geo repositories.Geography, points repositories.PointRegistry, log logger.Logger) *FormService {
	return &FormService{catalog: catalog, geo: geo, points: points, log: log}
}

// Load fills Items, UFs and, when a state is selected, Cities. The fetches
// run concurrently and independently: a failing source is logged and its
// field left empty, the others still complete.
func (s *FormService) Load(ctx context.Context, form *models.CreatePointForm) {
	var g errgroup.Group

	g.Go(func() error {
		items, err := s.catalog.ListItems(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "load items failed", "error", err)
			return nil
		}
		form.Items = items
		return nil
	})

	g.Go(func() error {
		ufs, err := s.geo.States(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "load states failed", "error", err)
			return nil
		}
		form.UFs = ufs
		return nil
	})

	if form.HasUF() {
		uf := form.SelectedUF
		g.Go(func() error {
			cities, err := s.geo.Cities(ctx, uf)
			if err != nil {
				s.log.WarnContext(ctx, "load cities failed", "uf", uf, "error", err)
				return nil
			}
			form.Cities = cities
			return nil
		})
	}

	_ = g.Wait()
}

// Cities lists the municipalities of uf. The page script calls it when the
// state changes so the form, and the file chosen in it, stays in the browser.
func (s *FormService) Cities(ctx context.Context, uf string) ([]string, error) {
	cities, err := s.geo.Cities(ctx, uf)
	if err != nil {
		return nil, fmt.Errorf("load cities of %s: %w", uf, err)
	}
	if cities == nil {
		cities = []string{}
	}
	return cities, nil
}

// Submit sends the form and the image to the points API.
func (s *FormService) Submit(ctx context.Context, form *models.CreatePointForm, image *models.Image) (*models.CreatedPoint, error) {
	created, err := s.points.CreatePoint(ctx, form.Submission(), image)
	if err != nil {
		return nil, fmt.Errorf("submit point: %w", err)
	}
	s.log.InfoContext(ctx, "point submitted", "point_id", created.ID)
	return created, nil
}
