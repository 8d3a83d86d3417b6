package handlers

import (
	"net/http"

	"github.com/ghuser/ecoleta/pkg/errhttp"
	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	appsvcs "github.com/ghuser/ecoleta/services/item/application/services"
)

// ItemResponse is one catalogue entry.
type ItemResponse struct {
	ID       int64  `json:"id"        example:"1"`
	Title    string `json:"title"     example:"Lâmpadas"`
	ImageURL string `json:"image_url" example:"http://localhost:3333/uploads/lampadas.svg"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"Internal Server Error"`
} // @name ErrorResponse

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc  *appsvcs.Services
	urls *storage.URLBuilder
	log  logger.Logger
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, urls *storage.URLBuilder, log logger.Logger) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, urls: urls, log: log}
}

// Execute lists the item catalogue.
//
//	@Summary		List items
//	@Description	Returns every recyclable-item category ordered by id
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.Respond(w, r, h.log, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = ItemResponse{
			ID:       it.ID,
			Title:    it.Title,
			ImageURL: h.urls.For(r, it.Image),
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}
