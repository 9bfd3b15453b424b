package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	static := fstest.MapFS{
		"css/app.css": &fstest.MapFile{Data: []byte("body{margin:0}")},
	}
	handler, err := NewRouter(RouterServices{
		TemplateFS: testTemplateFS(),
		StaticFS:   static,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return handler
}

func TestRouterHealthz(t *testing.T) {
	handler := newTestRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(method, "/healthz", nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s /healthz status = %d, want %d", method, w.Code, http.StatusOK)
		}
	}
}

func TestRouterUnknownPathGetsStyledNotFound(t *testing.T) {
	handler := newTestRouter(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Errorf("expected the styled 404 page, got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestRouterServesStaticAssets(t *testing.T) {
	handler := newTestRouter(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "margin:0") {
		t.Errorf("body = %q, want the stylesheet", w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age") {
		t.Errorf("Cache-Control = %q, want a max-age directive", cc)
	}
}

func TestRouterMissingStaticAssetStaysPlain(t *testing.T) {
	handler := newTestRouter(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/js/nope.js", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	// The styled page is for navigation; asset misses keep the file server's
	// plain response.
	if strings.Contains(w.Body.String(), "<html") {
		t.Errorf("missing asset should not render the styled page, got %q", w.Body.String())
	}
}
