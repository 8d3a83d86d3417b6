package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
)

// WithAssets serves names missing from store out of assets. The item
// catalogue icons ship inside the binary and are resolved this way, so the
// same /uploads route serves seeded icons and user uploads.
func WithAssets(store Store, assets fs.FS) Store {
	return &assetStore{Store: store, assets: assets}
}

type assetStore struct {
	Store
	assets fs.FS
}

func (s *assetStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	rc, ct, err := s.Store.Open(ctx, name)
	if !errors.Is(err, ErrNotFound) {
		return rc, ct, err
	}
	f, ferr := s.assets.Open(name)
	if ferr != nil {
		return nil, "", ErrNotFound
	}
	return f, contentTypeFor(name), nil
}
