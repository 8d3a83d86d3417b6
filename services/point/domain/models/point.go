package models

import (
	"fmt"
	"strconv"
	"strings"

	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
)

// Point is a registered collection point. Points are created once and never
// updated.
type Point struct {
	ID        int64
	Image     string // stored file name of the uploaded photo
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	// ItemIDs lists the accepted item categories, without duplicates.
	ItemIDs []int64
}

// AcceptedItem is the read model of an item joined through point_items.
type AcceptedItem struct {
	ID    int64
	Title string
	Image string
}

// PointDetail is a point together with the items it accepts.
type PointDetail struct {
	Point *Point
	Items []AcceptedItem
}

// NewPoint builds a Point aggregate. The ID is assigned by the repository.
func NewPoint(image, name, email, whatsapp string, latitude, longitude float64, city, uf string, itemIDs []int64) *Point {
	return &Point{
		Image:     image,
		Name:      name,
		Email:     email,
		Whatsapp:  whatsapp,
		Latitude:  latitude,
		Longitude: longitude,
		City:      city,
		UF:        strings.ToUpper(uf),
		ItemIDs:   itemIDs,
	}
}

// ParseItemIDs parses a comma-separated id list such as "1, 3,5". Blank
// entries are skipped and repeated ids collapse onto their first occurrence.
// At least one id is required.
func ParseItemIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q is not a positive integer", pointdomain.ErrInvalidItemIDs, p)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", pointdomain.ErrInvalidItemIDs)
	}
	return ids, nil
}

// FormatItemIDs renders ids in the comma-separated form ParseItemIDs accepts.
func FormatItemIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
