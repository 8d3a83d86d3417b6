package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	"github.com/ghuser/ecoleta/services/item/application/api"
	"github.com/ghuser/ecoleta/services/item/application/handlers"
	appsvcs "github.com/ghuser/ecoleta/services/item/application/services"
	"github.com/ghuser/ecoleta/services/item/domain/models"
)

type stubRepo struct {
	items []*models.Item
	err   error
}

func (s stubRepo) ListAll(context.Context) ([]*models.Item, error) { return s.items, s.err }

func newRouter(repo stubRepo, publicURL string) http.Handler {
	r := chi.NewRouter()
	svcs := &appsvcs.Services{Item: appsvcs.NewItemService(repo, nil, logger.Discard())}
	api.Mount(r, svcs, storage.NewURLBuilder(publicURL), logger.Discard())
	return r
}

func TestListItems_OK(t *testing.T) {
	h := newRouter(stubRepo{items: []*models.Item{
		{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"},
		{ID: 6, Title: "Óleo de Cozinha", Image: "oleo.svg"},
	}}, "")

	req := httptest.NewRequest(http.MethodGet, "/items", http.NoBody)
	req.Host = "localhost:3333"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got []handlers.ItemResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ImageURL != "http://localhost:3333/uploads/lampadas.svg" {
		t.Errorf("unexpected image_url %q", got[0].ImageURL)
	}
	if got[1].ID != 6 || got[1].Title != "Óleo de Cozinha" {
		t.Errorf("unexpected item %+v", got[1])
	}
}

func TestListItems_PublicURL(t *testing.T) {
	h := newRouter(stubRepo{items: []*models.Item{{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"}}}, "https://api.ecoleta.app")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items", http.NoBody))

	var got []handlers.ItemResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if len(got) != 1 || got[0].ImageURL != "https://api.ecoleta.app/uploads/lampadas.svg" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestListItems_EmptyCatalogueIsArray(t *testing.T) {
	rr := httptest.NewRecorder()
	newRouter(stubRepo{}, "").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items", http.NoBody))

	if rr.Code != http.StatusOK || rr.Body.String() != "[]\n" {
		t.Fatalf("expected empty JSON array, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestListItems_RepositoryFailureHidesDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	newRouter(stubRepo{err: errors.New("pq: password authentication failed")}, "").
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body handlers.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body.Error != "Internal Server Error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
}
