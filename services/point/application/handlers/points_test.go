package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/ecoleta/pkg/logger"
	"github.com/ghuser/ecoleta/pkg/storage"
	pkgvalidator "github.com/ghuser/ecoleta/pkg/validator"
	"github.com/ghuser/ecoleta/services/point/application/api"
	"github.com/ghuser/ecoleta/services/point/application/handlers"
	appsvcs "github.com/ghuser/ecoleta/services/point/application/services"
	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
	"github.com/ghuser/ecoleta/services/point/domain/models"
	"github.com/ghuser/ecoleta/services/point/domain/repositories"
)

type fakeRepo struct {
	saved   []*models.Point
	saveErr error
	detail  *models.PointDetail
	list    []*models.Point
	filter  repositories.PointFilter
}

func (f *fakeRepo) Save(_ context.Context, p *models.Point) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	p.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeRepo) GetDetail(_ context.Context, id int64) (*models.PointDetail, error) {
	if f.detail == nil || f.detail.Point.ID != id {
		return nil, pointdomain.ErrPointNotFound
	}
	return f.detail, nil
}

func (f *fakeRepo) List(_ context.Context, filter repositories.PointFilter) ([]*models.Point, error) {
	f.filter = filter
	return f.list, nil
}

type fixture struct {
	router http.Handler
	repo   *fakeRepo
	dir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	repo := &fakeRepo{}
	svcs := &appsvcs.Services{Point: appsvcs.NewPointService(repo, nil, logger.Discard())}

	r := chi.NewRouter()
	api.Mount(r, svcs, store, storage.NewURLBuilder("http://localhost:3333"), 1<<20, logger.Discard())
	return &fixture{router: r, repo: repo, dir: dir}
}

func (f *fixture) do(r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, r)
	return rr
}

func (f *fixture) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func validFields() map[string]string {
	return map[string]string{
		"name":      "Mercado do Zé",
		"email":     "contato@mercado.com",
		"whatsapp":  "11999990000",
		"latitude":  "-23.5505",
		"longitude": "-46.6333",
		"city":      "São Paulo",
		"uf":        "SP",
		"items":     "1,3,5",
	}
}

func createRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	if !withImage {
		return requestWithFile(t, fields, "", "", nil)
	}
	return requestWithFile(t, fields, "market.jpg", "image/jpeg", []byte("\xff\xd8\xff jpeg"))
}

func requestWithFile(t *testing.T, fields map[string]string, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write(content)
	}
	_ = mw.Close()
	r := httptest.NewRequest(http.MethodPost, "/points", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestCreatePoint_Created(t *testing.T) {
	f := newFixture(t)

	rr := f.do(createRequest(t, validFields(), true))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var got handlers.PointResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 1 || got.UF != "SP" || got.Latitude != -23.5505 {
		t.Fatalf("unexpected point %+v", got)
	}
	if len(got.Items) != 3 || got.Items[0] != 1 || got.Items[1] != 3 || got.Items[2] != 5 {
		t.Fatalf("expected items [1 3 5], got %v", got.Items)
	}
	if !strings.HasSuffix(got.Image, "-market.jpg") {
		t.Errorf("unexpected stored image name %q", got.Image)
	}
	if got.ImageURL != "http://localhost:3333/uploads/"+got.Image {
		t.Errorf("unexpected image_url %q", got.ImageURL)
	}
	if files := f.storedFiles(t); len(files) != 1 || files[0] != got.Image {
		t.Fatalf("expected the upload to be kept, got %v", files)
	}
}

func TestCreatePoint_ReportsEveryMissingField(t *testing.T) {
	f := newFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/points", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json")
	rr := f.do(r)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var body pkgvalidator.ValidationErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"name", "email", "whatsapp", "latitude", "longitude", "city", "uf", "items"} {
		if _, ok := body.Fields[field]; !ok {
			t.Errorf("expected violation for %q, got %v", field, body.Fields)
		}
	}
	if len(body.Messages) != 8 {
		t.Errorf("expected 8 messages, got %v", body.Messages)
	}
	if len(f.repo.saved) != 0 {
		t.Fatal("handler must not run on invalid payloads")
	}
}

func TestCreatePoint_RejectsLongUF(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["uf"] = "SPX"

	rr := f.do(createRequest(t, fields, true))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var body pkgvalidator.ValidationErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if _, ok := body.Fields["uf"]; !ok || len(body.Fields) != 1 {
		t.Fatalf("expected only a uf violation, got %v", body.Fields)
	}
	if files := f.storedFiles(t); len(files) != 0 {
		t.Fatalf("rejected upload should be removed, got %v", files)
	}
}

func TestCreatePoint_NonNumericLatitude(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["latitude"] = "north"

	rr := f.do(createRequest(t, fields, true))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "latitude") {
		t.Fatalf("expected latitude violation, got %s", rr.Body.String())
	}
}

func TestCreatePoint_ExponentCoordinates(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["latitude"] = "1e-5"
	fields["longitude"] = "-4.66333E+1"

	rr := f.do(createRequest(t, fields, true))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if p := f.repo.saved[0]; p.Latitude != 0.00001 || p.Longitude != -46.6333 {
		t.Fatalf("unexpected coordinates %v, %v", p.Latitude, p.Longitude)
	}
}

func TestCreatePoint_MissingImage(t *testing.T) {
	f := newFixture(t)

	rr := f.do(createRequest(t, validFields(), false))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), pointdomain.ErrImageRequired.Error()) {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestCreatePoint_RejectsDisguisedHTML(t *testing.T) {
	f := newFixture(t)

	rr := f.do(requestWithFile(t, validFields(), "evil.html", "image/png", []byte("<html><script src=x.js></script></html>")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(f.repo.saved) != 0 {
		t.Fatal("no point may be saved for a rejected upload")
	}
	if files := f.storedFiles(t); len(files) != 0 {
		t.Fatalf("nothing may be stored, got %v", files)
	}
}

func TestCreatePoint_InvalidItemID(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["items"] = "1,abc"

	rr := f.do(createRequest(t, fields, true))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if files := f.storedFiles(t); len(files) != 0 {
		t.Fatalf("rejected upload should be removed, got %v", files)
	}
}

func TestCreatePoint_OutOfRangeCoordinates(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["longitude"] = "200"

	rr := f.do(createRequest(t, fields, true))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestCreatePoint_PersistenceFailureRemovesUpload(t *testing.T) {
	f := newFixture(t)
	f.repo.saveErr = errors.New("insert point_items: foreign key violation")

	rr := f.do(createRequest(t, validFields(), true))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "foreign key") {
		t.Fatalf("internal error leaked: %s", rr.Body.String())
	}
	if files := f.storedFiles(t); len(files) != 0 {
		t.Fatalf("upload of failed creation should be removed, got %v", files)
	}
}

func TestGetPoint(t *testing.T) {
	f := newFixture(t)
	f.repo.detail = &models.PointDetail{
		Point: &models.Point{ID: 7, Image: "abc-market.jpg", Name: "Mercado", UF: "SP", ItemIDs: []int64{1}},
		Items: []models.AcceptedItem{{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"}},
	}

	rr := f.do(httptest.NewRequest(http.MethodGet, "/points/7", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got handlers.PointDetailResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Point.ID != 7 || got.Point.ImageURL != "http://localhost:3333/uploads/abc-market.jpg" {
		t.Fatalf("unexpected point %+v", got.Point)
	}
	if len(got.Items) != 1 || got.Items[0].ImageURL != "http://localhost:3333/uploads/lampadas.svg" {
		t.Fatalf("unexpected items %+v", got.Items)
	}
}

func TestGetPoint_Errors(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/points/99", http.StatusNotFound},
		{"/points/abc", http.StatusBadRequest},
		{"/points/-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := newFixture(t).do(httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestListPoints_Filters(t *testing.T) {
	f := newFixture(t)
	f.repo.list = []*models.Point{{ID: 1, Image: "a.jpg", City: "São Paulo", UF: "SP"}}

	rr := f.do(httptest.NewRequest(http.MethodGet, "/points?city=S%C3%A3o+Paulo&uf=sp&items=1,3", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if f.repo.filter.City != "São Paulo" || f.repo.filter.UF != "SP" || len(f.repo.filter.ItemIDs) != 2 {
		t.Fatalf("unexpected filter %+v", f.repo.filter)
	}
	var got []handlers.PointResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if len(got) != 1 || got[0].ImageURL != "http://localhost:3333/uploads/a.jpg" {
		t.Fatalf("unexpected points %+v", got)
	}
}

func TestListPoints_EmptyIsArray(t *testing.T) {
	rr := newFixture(t).do(httptest.NewRequest(http.MethodGet, "/points", http.NoBody))
	if rr.Code != http.StatusOK || rr.Body.String() != "[]\n" {
		t.Fatalf("expected empty JSON array, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestListPoints_BadItemsFilter(t *testing.T) {
	rr := newFixture(t).do(httptest.NewRequest(http.MethodGet, "/points?items=x", http.NoBody))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
