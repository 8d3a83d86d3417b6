package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/ecoleta/pkg/errhttp"
	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	pkgvalidator "github.com/ghuser/ecoleta/pkg/validator"
	appsvcs "github.com/ghuser/ecoleta/services/point/application/services"
)

// CreatePointRequest is the multipart (or JSON) body for POST /points.
// Numbers arrive as strings and are checked with the float rule.
type CreatePointRequest struct {
	Name      string `json:"name"      validate:"required"              example:"Mercado do Zé"`
	Email     string `json:"email"     validate:"required"              example:"contato@mercado.com"`
	Whatsapp  string `json:"whatsapp"  validate:"required"              example:"11999990000"`
	Latitude  string `json:"latitude"  validate:"required,float"        example:"-23.5505"`
	Longitude string `json:"longitude" validate:"required,float"        example:"-46.6333"`
	City      string `json:"city"      validate:"required"              example:"São Paulo"`
	UF        string `json:"uf"        validate:"required,max=2"        example:"SP"`
	Items     string `json:"items"     validate:"required"              example:"1,3,5"`
} // @name CreatePointRequest

// CreatePointHandler handles POST /points requests.
type CreatePointHandler struct {
	svc  *appsvcs.Services
	urls *storage.URLBuilder
	log  logger.Logger
}

// NewCreatePointHandler returns a CreatePointHandler backed by the given services.
func NewCreatePointHandler(svc *appsvcs.Services, urls *storage.URLBuilder, log logger.Logger) *CreatePointHandler {
	return &CreatePointHandler{svc: svc, urls: urls, log: log}
}

// Execute registers a collection point with its image and accepted items.
//
//	@Summary		Create point
//	@Description	Stores the uploaded image, then inserts the point and its item associations in one transaction
//	@Tags			points
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image		formData	file	true	"Point photo (JPEG, PNG, GIF or WEBP)"
//	@Param			name		formData	string	true	"Name"
//	@Param			email		formData	string	true	"E-mail"
//	@Param			whatsapp	formData	string	true	"WhatsApp number"
//	@Param			latitude	formData	number	true	"Latitude"
//	@Param			longitude	formData	number	true	"Longitude"
//	@Param			city		formData	string	true	"City"
//	@Param			uf			formData	string	true	"Two-letter state code"
//	@Param			items		formData	string	true	"Comma-separated item ids"
//	@Success		201			{object}	PointResponse
//	@Failure		400			{object}	pkgvalidator.ValidationErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/points [post]
func (h *CreatePointHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.FromContext[CreatePointRequest](r.Context())
	if !ok {
		if req, ok = pkgvalidator.ValidateRequest[CreatePointRequest](w, r); !ok {
			return
		}
	}

	// float was enforced by the validator.
	lat, _ := strconv.ParseFloat(req.Latitude, 64)
	lon, _ := strconv.ParseFloat(req.Longitude, 64)
	image, _ := storage.FilenameFromCtx(r.Context())

	p, err := h.svc.Point.Create(r.Context(), appsvcs.CreatePointInput{
		Image:     image,
		Name:      req.Name,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Latitude:  lat,
		Longitude: lon,
		City:      req.City,
		UF:        req.UF,
		Items:     req.Items,
	})
	if err != nil {
		errhttp.Respond(w, r, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toPointResponse(r, h.urls, p))
}
