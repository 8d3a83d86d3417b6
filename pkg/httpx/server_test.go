package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/ecoleta/pkg/httpx"
)

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(cfg httpx.ServerConfig) http.Handler {
	r := httpx.NewRouter(cfg, passthrough, passthrough, passthrough, passthrough)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{CORSAllowedOrigins: "*"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	checks := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": httpx.DefaultContentSecurityPolicy,
		"Permissions-Policy":      httpx.DefaultPermissionsPolicy,
	}
	for header, expected := range checks {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("%s: got %q, want %q", header, got, expected)
		}
	}
}

func TestNewRouter_CustomPolicies(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{
		CORSAllowedOrigins:    "*",
		ContentSecurityPolicy: "default-src 'self'; img-src *",
		PermissionsPolicy:     "geolocation=(self)",
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if got := rr.Header().Get("Content-Security-Policy"); got != "default-src 'self'; img-src *" {
		t.Errorf("CSP: got %q", got)
	}
	if got := rr.Header().Get("Permissions-Policy"); got != "geolocation=(self)" {
		t.Errorf("Permissions-Policy: got %q", got)
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(httpx.ServerConfig{CORSAllowedOrigins: "http://localhost:3000"})
	req := httptest.NewRequest(http.MethodOptions, "/", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin: got %q", got)
	}
}

func TestRequestBodyLimit_WithinLimit(t *testing.T) {
	var n int
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 200)
		n, _ = r.Body.Read(buf)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	httpx.RequestBodyLimit(100)(inner).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 50))))

	if rr.Code != http.StatusOK || n != 50 {
		t.Fatalf("expected 200 with 50 bytes, got %d with %d", rr.Code, n)
	}
}

func TestRequestBodyLimit_ExceedsLimit(t *testing.T) {
	const limit int64 = 10

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+5)
		if _, err := r.Body.Read(buf); err != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	httpx.RequestBodyLimit(limit)(inner).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", int(limit)+1))))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := httpx.NewServer(":0", http.NotFoundHandler())
	if srv.ReadHeaderTimeout == 0 || srv.WriteTimeout == 0 || srv.IdleTimeout == 0 {
		t.Fatalf("expected timeouts to be set: %+v", srv)
	}
}
