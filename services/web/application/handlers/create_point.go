package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/session"
	appsvcs "github.com/ghuser/ecoleta/services/web/application/services"
	webdomain "github.com/ghuser/ecoleta/services/web/domain"
	"github.com/ghuser/ecoleta/services/web/domain/models"
)

const (
	// CreatedMessage is flashed on the home page after a successful submission.
	CreatedMessage = "Ponto de coleta criado!"

	genericFailure  = "Não foi possível cadastrar o ponto de coleta. Tente novamente."
	reselectImage   = "Selecione a imagem novamente."
	multipartMemory = 8 << 20
)

type createPointView struct {
	Form    *models.CreatePointForm
	Errors  map[string]string
	Message string
}

// CreatePointHandler serves the create-point page and processes its posts.
type CreatePointHandler struct {
	svc   *appsvcs.Services
	pages *Renderer
	flash *session.Flasher
	log   logger.Logger
}

// NewCreatePointHandler returns a CreatePointHandler.
func NewCreatePointHandler(svc *appsvcs.Services, pages *Renderer, flash *session.Flasher, log logger.Logger) *CreatePointHandler {
	return &CreatePointHandler{svc: svc, pages: pages, flash: flash, log: log}
}

// Show handles GET /create-point with a fresh form.
func (h *CreatePointHandler) Show(w http.ResponseWriter, r *http.Request) {
	form := models.NewCreatePointForm()
	h.svc.Form.Load(r.Context(), form)
	h.render(w, r, http.StatusOK, createPointView{Form: form})
}

// Post handles POST /create-point. Action "submit" sends the form to the API.
// A "toggle" value flips one item and anything else re-renders with fresh
// reference data; the page script does both in the browser, so these
// branches serve clients without JavaScript.
func (h *CreatePointHandler) Post(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.log.DebugContext(r.Context(), "create-point: bad form", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)

	if raw := r.PostFormValue("toggle"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			form.ToggleItem(id)
		}
		h.rerender(w, r, form)
		return
	}

	if r.PostFormValue("action") != "submit" {
		h.rerender(w, r, form)
		return
	}

	image, closeImage := imageFromRequest(r)
	defer closeImage()

	if _, err := h.svc.Form.Submit(r.Context(), form, image); err != nil {
		h.renderFailure(w, r, form, image != nil, err)
		return
	}

	if err := h.flash.Add(w, r, CreatedMessage); err != nil {
		h.log.WarnContext(r.Context(), "store flash failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Cities handles GET /create-point/cities?uf=SP with the JSON list of the
// state's municipalities.
func (h *CreatePointHandler) Cities(w http.ResponseWriter, r *http.Request) {
	uf := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("uf")))
	if len(uf) != 2 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid uf")
		return
	}
	cities, err := h.svc.Form.Cities(r.Context(), uf)
	if err != nil {
		h.log.WarnContext(r.Context(), "load cities failed", "uf", uf, "error", err)
		httpx.JSONError(w, http.StatusBadGateway, "Could not load cities")
		return
	}
	httpx.JSON(w, http.StatusOK, cities)
}

// rerender shows the edited form again. Browsers never refill a file input,
// so a file posted with the round trip is reported as needing reselection.
func (h *CreatePointHandler) rerender(w http.ResponseWriter, r *http.Request, form *models.CreatePointForm) {
	h.svc.Form.Load(r.Context(), form)
	view := createPointView{Form: form}
	if image, closeImage := imageFromRequest(r); image != nil {
		closeImage()
		view.Errors = map[string]string{"image": reselectImage}
	}
	h.render(w, r, http.StatusOK, view)
}

func (h *CreatePointHandler) renderFailure(w http.ResponseWriter, r *http.Request, form *models.CreatePointForm, hadImage bool, err error) {
	h.svc.Form.Load(r.Context(), form)

	view := createPointView{Form: form, Errors: map[string]string{}}
	status := http.StatusBadGateway
	var rej *webdomain.RejectedError
	if errors.As(err, &rej) {
		h.log.InfoContext(r.Context(), "point submission rejected", "status", rej.Status, "error", err)
		status = http.StatusUnprocessableEntity
		for field, msg := range rej.Fields {
			view.Errors[field] = msg
		}
		if len(rej.Fields) == 0 {
			view.Message = rej.Message
		}
	} else {
		h.log.ErrorContext(r.Context(), "point submission failed", "error", err)
		view.Message = genericFailure
	}
	if _, ok := view.Errors["image"]; hadImage && !ok {
		view.Errors["image"] = reselectImage
	}
	h.render(w, r, status, view)
}

func (h *CreatePointHandler) render(w http.ResponseWriter, r *http.Request, status int, view createPointView) {
	if err := h.pages.Render(w, status, "create_point.html", view); err != nil {
		h.log.ErrorContext(r.Context(), "render create-point failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

// formFromRequest rebuilds the page state from the posted fields. loaded_uf
// is the state whose cities were on screen, so a changed uf drops the city.
func formFromRequest(r *http.Request) *models.CreatePointForm {
	form := models.NewCreatePointForm()
	form.SelectUF(r.PostFormValue("loaded_uf"))
	form.SelectCity(r.PostFormValue("city"))
	form.SelectUF(r.PostFormValue("uf"))

	for _, name := range []string{"name", "email", "whatsapp"} {
		_ = form.SetField(name, r.PostFormValue(name))
	}
	form.SelectedItems = models.ParseSelectedItems(r.PostFormValue("items"))
	form.ClickMap(models.Position{
		Latitude:  parseCoordinate(r.PostFormValue("latitude")),
		Longitude: parseCoordinate(r.PostFormValue("longitude")),
	})
	form.InitialPosition = models.Position{
		Latitude:  parseCoordinate(r.PostFormValue("initial_latitude")),
		Longitude: parseCoordinate(r.PostFormValue("initial_longitude")),
	}
	return form
}

func parseCoordinate(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// imageFromRequest returns the uploaded image, or nil when none was sent.
func imageFromRequest(r *http.Request) (*models.Image, func()) {
	if r.MultipartForm == nil {
		return nil, func() {}
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, func() {}
	}
	return &models.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, func() { _ = file.Close() }
}
