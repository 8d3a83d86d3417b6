package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
)

const multipartMemory = 8 << 20

// imageTypes lists the accepted image types and the extension stored names
// get for each.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type filenameKey struct{}

// FilenameFromCtx returns the stored name of the file accepted by SingleFile.
func FilenameFromCtx(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(filenameKey{}).(string)
	return name, ok && name != ""
}

// SingleFile accepts at most one image in the multipart field named field.
// The type is detected from the file content, never from the client's
// Content-Type or filename, and only JPEG, PNG, GIF and WEBP pass. The file is
// stored as "<uuid>-<sanitized name><extension of the detected type>" and the
// stored name is exposed through FilenameFromCtx. Requests without a file
// pass through untouched. When the downstream handler answers with a status
// >= 400 the stored file is deleted again so failed creations leave nothing
// behind.
func SingleFile(store Store, field string, maxBytes int64, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				next.ServeHTTP(w, r)
				return
			}
			if err := r.ParseMultipartForm(multipartMemory); err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				httpx.JSONError(w, http.StatusBadRequest, "Invalid multipart body")
				return
			}

			files := r.MultipartForm.File[field]
			if len(files) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			if len(files) > 1 {
				httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("Only one file is accepted in %q", field))
				return
			}
			header := files[0]
			if header.Size > maxBytes {
				httpx.JSONError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Image exceeds the %d byte limit", maxBytes))
				return
			}

			file, err := header.Open()
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "Could not read uploaded file")
				return
			}
			defer file.Close() //nolint:errcheck

			contentType, ext, err := sniffImage(file)
			if err != nil {
				log.DebugContext(r.Context(), "upload: rejected file", "filename", header.Filename, "error", err)
				httpx.JSONError(w, http.StatusBadRequest, "Only JPEG, PNG, GIF or WEBP images are accepted")
				return
			}

			name := storedName(header.Filename, ext)
			if err := store.Save(r.Context(), name, file, contentType); err != nil {
				log.ErrorContext(r.Context(), "upload: store image", "error", err)
				httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), filenameKey{}, name)))

			if ww.Status() >= http.StatusBadRequest {
				if err := store.Delete(context.WithoutCancel(r.Context()), name); err != nil {
					log.WarnContext(r.Context(), "upload: remove orphaned image", "image", name, "error", err)
					return
				}
				log.DebugContext(r.Context(), "upload: removed image of failed request", "image", name, "status", ww.Status())
			}
		})
	}
}

// sniffImage detects the type of f from its leading bytes and rewinds it.
func sniffImage(f multipart.File) (contentType, ext string, err error) {
	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", "", fmt.Errorf("detect type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewind: %w", err)
	}
	// Walk up so subtypes such as APNG are stored as their base image type.
	for m := detected; m != nil; m = m.Parent() {
		if e, ok := imageTypes[m.String()]; ok {
			return m.String(), e, nil
		}
	}
	return "", "", fmt.Errorf("unsupported type %s", detected.String())
}

func storedName(original, ext string) string {
	base := SanitizeFilename(original)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "image"
	}
	return uuid.NewString() + "-" + base + ext
}
