// Package storage keeps uploaded point images. Two backends exist: a local
// directory and an S3-compatible bucket (MinIO in development). Stored names
// are flat; no backend accepts path separators.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ghuser/ecoleta/pkg/config"
	"github.com/ghuser/ecoleta/pkg/logger"
)

var (
	// ErrNotFound is returned by Open when no object has the given name.
	ErrNotFound = errors.New("storage: object not found")
	// ErrInvalidName is returned for names that are empty or contain a path.
	ErrInvalidName = errors.New("storage: invalid object name")
)

// Store is the image storage contract shared by every backend.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	// Open returns the object body and its content type. The caller closes the body.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	// Delete removes name. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
	Ping(ctx context.Context) error
}

// New builds the backend selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		log.Info("image store ready", "backend", config.StorageS3, "bucket", cfg.MinioBucket)
		return s, nil
	case config.StorageLocal, "":
		s, err := NewLocalStore(cfg.UploadsDir)
		if err != nil {
			return nil, err
		}
		log.Info("image store ready", "backend", config.StorageLocal, "dir", cfg.UploadsDir)
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces a client-supplied filename to a safe flat name.
func SanitizeFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if len(base) > 100 {
		base = base[len(base)-100:]
	}
	if base == "" {
		return "image"
	}
	return base
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
