package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/ecoleta/pkg/errhttp"
	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	appsvcs "github.com/ghuser/ecoleta/services/point/application/services"
	"github.com/ghuser/ecoleta/services/point/domain/models"
	"github.com/ghuser/ecoleta/services/point/domain/repositories"
)

// ListPointsHandler handles GET /points requests.
type ListPointsHandler struct {
	svc  *appsvcs.Services
	urls *storage.URLBuilder
	log  logger.Logger
}

// NewListPointsHandler returns a ListPointsHandler backed by the given services.
func NewListPointsHandler(svc *appsvcs.Services, urls *storage.URLBuilder, log logger.Logger) *ListPointsHandler {
	return &ListPointsHandler{svc: svc, urls: urls, log: log}
}

// Execute lists collection points, optionally filtered.
//
//	@Summary		List points
//	@Description	Returns every collection point. city and uf match exactly; items matches points accepting any of the given ids.
//	@Tags			points
//	@Produce		json
//	@Param			city	query		string	false	"City name"
//	@Param			uf		query		string	false	"Two-letter state code"
//	@Param			items	query		string	false	"Comma-separated item ids"	example(1,3)
//	@Success		200		{array}		PointResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/points [get]
func (h *ListPointsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.PointFilter{
		City: strings.TrimSpace(q.Get("city")),
		UF:   strings.ToUpper(strings.TrimSpace(q.Get("uf"))),
	}
	if raw := strings.TrimSpace(q.Get("items")); raw != "" {
		ids, err := models.ParseItemIDs(raw)
		if err != nil {
			errhttp.Respond(w, r, h.log, err)
			return
		}
		filter.ItemIDs = ids
	}

	points, err := h.svc.Point.List(r.Context(), filter)
	if err != nil {
		errhttp.Respond(w, r, h.log, err)
		return
	}

	resp := make([]PointResponse, len(points))
	for i, p := range points {
		resp[i] = toPointResponse(r, h.urls, p)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
