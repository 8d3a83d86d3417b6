package services

import (
	"math"
	"testing"

	"github.com/ghuser/ecoleta/services/point/domain/models"
)

func validPoint() *models.Point {
	return models.NewPoint("a.png", "Mercado", "m@x.com", "11999", -23.55, -46.63, "São Paulo", "SP", []int64{1, 3})
}

func TestValidatePointForCreation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.Point)
		wantErr bool
	}{
		{"valid", func(*models.Point) {}, false},
		{"blank name", func(p *models.Point) { p.Name = "  " }, true},
		{"blank city", func(p *models.Point) { p.City = "" }, true},
		{"uf too long", func(p *models.Point) { p.UF = "SPX" }, true},
		{"uf empty", func(p *models.Point) { p.UF = "" }, true},
		{"latitude out of range", func(p *models.Point) { p.Latitude = 91 }, true},
		{"longitude out of range", func(p *models.Point) { p.Longitude = -180.5 }, true},
		{"latitude NaN", func(p *models.Point) { p.Latitude = math.NaN() }, true},
		{"edge coordinates", func(p *models.Point) { p.Latitude, p.Longitude = -90, 180 }, false},
		{"no items", func(p *models.Point) { p.ItemIDs = nil }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPoint()
			tt.mutate(p)
			err := ValidatePointForCreation(p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidatePointForCreation_Nil(t *testing.T) {
	if err := ValidatePointForCreation(nil); err == nil {
		t.Fatal("expected error for nil point")
	}
}
