// Package services contains stateless domain services for the point bounded context.
package services

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ghuser/ecoleta/services/point/domain/models"
)

const maxUFLength = 2

// ValidateCoordinates checks latitude and longitude ranges.
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("latitude %v outside [-90, 90]", latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("longitude %v outside [-180, 180]", longitude)
	}
	return nil
}

// ValidatePointForCreation performs cross-field validation on a Point built
// with models.NewPoint before it is persisted.
func ValidatePointForCreation(p *models.Point) error {
	if p == nil {
		return fmt.Errorf("point cannot be nil")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("city must not be blank")
	}
	if n := utf8.RuneCountInString(p.UF); n == 0 || n > maxUFLength {
		return fmt.Errorf("uf must have 1 to %d characters", maxUFLength)
	}
	if err := ValidateCoordinates(p.Latitude, p.Longitude); err != nil {
		return err
	}
	if len(p.ItemIDs) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	return nil
}
