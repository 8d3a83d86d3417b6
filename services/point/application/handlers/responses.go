package handlers

import (
	"net/http"

	"github.com/ghuser/ecoleta/pkg/storage"
	"github.com/ghuser/ecoleta/services/point/domain/models"
)

// PointResponse is the JSON shape of a collection point.
type PointResponse struct {
	ID        int64   `json:"id"        example:"7"`
	Image     string  `json:"image"     example:"3f0c2c9e-market.jpg"`
	ImageURL  string  `json:"image_url" example:"http://localhost:3333/uploads/3f0c2c9e-market.jpg"`
	Name      string  `json:"name"      example:"Mercado do Zé"`
	Email     string  `json:"email"     example:"contato@mercado.com"`
	Whatsapp  string  `json:"whatsapp"  example:"11999990000"`
	Latitude  float64 `json:"latitude"  example:"-23.5505"`
	Longitude float64 `json:"longitude" example:"-46.6333"`
	City      string  `json:"city"      example:"São Paulo"`
	UF        string  `json:"uf"        example:"SP"`
	Items     []int64 `json:"items,omitempty"`
} // @name PointResponse

// AcceptedItemResponse is an item accepted by a point.
type AcceptedItemResponse struct {
	ID       int64  `json:"id"        example:"1"`
	Title    string `json:"title"     example:"Lâmpadas"`
	ImageURL string `json:"image_url" example:"http://localhost:3333/uploads/lampadas.svg"`
} // @name AcceptedItemResponse

// PointDetailResponse is returned by GET /points/{id}.
type PointDetailResponse struct {
	Point PointResponse          `json:"point"`
	Items []AcceptedItemResponse `json:"items"`
} // @name PointDetailResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"point not found"`
} // @name PointErrorResponse

func toPointResponse(r *http.Request, urls *storage.URLBuilder, p *models.Point) PointResponse {
	return PointResponse{
		ID:        p.ID,
		Image:     p.Image,
		ImageURL:  urls.For(r, p.Image),
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		Items:     p.ItemIDs,
	}
}
