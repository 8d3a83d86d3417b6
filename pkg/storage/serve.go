package storage

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
)

// UploadsPrefix is the path under which stored images are served.
const UploadsPrefix = "/uploads"

// ServeHandler streams stored images. Mount it on a wildcard route such as
// "/uploads/*". Objects whose type is not an image are sent as attachments. Names are unique per upload, so responses are cacheable forever.
func ServeHandler(store Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "*")
		rc, contentType, err := store.Open(r.Context(), name)
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
			httpx.JSONError(w, http.StatusNotFound, "Image not found")
			return
		case err != nil:
			log.ErrorContext(r.Context(), "uploads: open image", "image", name, "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		defer rc.Close() //nolint:errcheck

		// Only images render inline; anything else is downloaded.
		if !strings.HasPrefix(contentType, "image/") {
			contentType = "application/octet-stream"
			w.Header().Set("Content-Disposition", "attachment")
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		if _, err := io.Copy(w, rc); err != nil {
			log.WarnContext(r.Context(), "uploads: stream image", "image", name, "error", err)
		}
	}
}

// URLBuilder turns stored image names into absolute URLs.
type URLBuilder struct {
	// PublicURL, when set, replaces the request scheme and host.
	PublicURL string
}

// NewURLBuilder returns a URLBuilder rooted at publicURL (may be empty).
func NewURLBuilder(publicURL string) *URLBuilder {
	return &URLBuilder{PublicURL: strings.TrimRight(publicURL, "/")}
}

// For returns the absolute URL of the stored image name as seen by r's client.
func (b *URLBuilder) For(r *http.Request, name string) string {
	base := b.PublicURL
	if base == "" {
		base = httpx.BaseURL(r)
	}
	return base + UploadsPrefix + "/" + url.PathEscape(name)
}
