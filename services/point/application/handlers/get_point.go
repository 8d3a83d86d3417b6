package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/errhttp"
	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	appsvcs "github.com/ghuser/ecoleta/services/point/application/services"
)

// GetPointHandler handles GET /points/{id} requests.
type GetPointHandler struct {
	svc  *appsvcs.Services
	urls *storage.URLBuilder
	log  logger.Logger
}

// NewGetPointHandler returns a GetPointHandler backed by the given services.
func NewGetPointHandler(svc *appsvcs.Services, urls *storage.URLBuilder, log logger.Logger) *GetPointHandler {
	return &GetPointHandler{svc: svc, urls: urls, log: log}
}

// Execute returns one point with the items it accepts.
//
//	@Summary		Get point
//	@Description	Returns the point and its accepted items
//	@Tags			points
//	@Produce		json
//	@Param			id	path		int	true	"Point ID"
//	@Success		200	{object}	PointDetailResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/points/{id} [get]
func (h *GetPointHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid point id")
		return
	}

	detail, err := h.svc.Point.Get(r.Context(), id)
	if err != nil {
		errhttp.Respond(w, r, h.log, err)
		return
	}

	items := make([]AcceptedItemResponse, len(detail.Items))
	for i, it := range detail.Items {
		items[i] = AcceptedItemResponse{ID: it.ID, Title: it.Title, ImageURL: h.urls.For(r, it.Image)}
	}
	httpx.JSON(w, http.StatusOK, PointDetailResponse{
		Point: toPointResponse(r, h.urls, detail.Point),
		Items: items,
	})
}
