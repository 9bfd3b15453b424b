package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

// testTemplateFS is a minimal template tree matching the production layout:
// a layout that embeds the page by name, an error shell, and a pages dir.
func testTemplateFS() fstest.MapFS {
	return fstest.MapFS{
		"layout.tmpl": &fstest.MapFile{Data: []byte(
			`{{define "layout"}}<html><title>{{.Title}}</title><main>{{embed .Page .}}</main></html>{{end}}`,
		)},
		"error.tmpl": &fstest.MapFile{Data: []byte(
			`{{define "error-layout"}}<html><body class="error">{{embed .Page .}}</body></html>{{end}}`,
		)},
		"pages/pages.tmpl": &fstest.MapFile{Data: []byte(
			`{{define "page-hello"}}<p>hello {{.Data}}</p>{{end}}` +
				`{{define "page-notfound"}}<p>not found</p>{{end}}` +
				`{{define "page-error"}}<p>{{.Error}}</p>{{end}}`,
		)},
	}
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: testTemplateFS()})
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	return renderer
}

func TestRenderPageFullLayout(t *testing.T) {
	renderer := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/hello", nil)

	err := renderer.RenderPage(w, r, PageData{Page: "page-hello", Title: "Hello", Data: "world"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<title>Hello</title>") {
		t.Errorf("full render should include the layout, got %q", body)
	}
	if !strings.Contains(body, "<p>hello world</p>") {
		t.Errorf("full render should embed the page, got %q", body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestRenderPagePartialForHTMX(t *testing.T) {
	renderer := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/hello", nil)
	r.Header.Set("Hx-Request", "true")

	err := renderer.RenderPage(w, r, PageData{Page: "page-hello", Data: "world"})
	if err != nil {
		t.Fatalf("render partial: %v", err)
	}

	body := w.Body.String()
	if strings.Contains(body, "<html>") {
		t.Errorf("partial render should skip the layout, got %q", body)
	}
	if !strings.Contains(body, "<p>hello world</p>") {
		t.Errorf("partial render should return the bare page, got %q", body)
	}
}

func TestRenderErrorWritesStatus(t *testing.T) {
	renderer := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/boom", nil)

	err := renderer.RenderError(w, r, http.StatusBadGateway, PageData{Page: "page-error", Error: "backend unreachable"})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if !strings.Contains(w.Body.String(), "backend unreachable") {
		t.Errorf("error page should surface the message, got %q", w.Body.String())
	}
}

func TestNewTemplateRendererRequiresFS(t *testing.T) {
	if _, err := NewTemplateRenderer(TemplateRendererConfig{}); err == nil {
		t.Fatal("expected error when TemplateFS is missing")
	}
}
