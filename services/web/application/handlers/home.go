package handlers

import (
	"net/http"

	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/session"
)

type homeView struct {
	Flashes []string
}

// HomeHandler renders the landing page with any pending flash message.
type HomeHandler struct {
	pages *Renderer
	flash *session.Flasher
	log   logger.Logger
}

// NewHomeHandler returns a HomeHandler.
func NewHomeHandler(pages *Renderer, flash *session.Flasher, log logger.Logger) *HomeHandler {
	return &HomeHandler{pages: pages, flash: flash, log: log}
}

// Execute handles GET /.
func (h *HomeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.flash.Pop(w, r)
	if err != nil {
		h.log.WarnContext(r.Context(), "read flash failed", "error", err)
	}
	if err := h.pages.Render(w, http.StatusOK, "home.html", homeView{Flashes: msgs}); err != nil {
		h.log.ErrorContext(r.Context(), "render home failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
