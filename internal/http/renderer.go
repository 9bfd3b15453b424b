package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

// PageData is the payload every template receives.
type PageData struct {
	Page      string // name of the page template to embed in the layout
	Title     string
	Session   *domainauth.Session
	CSRFToken string
	Flash     string
	Error     string
	Data      any
}

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	// The layout embeds the page template named by PageData.Page. The func
	// closes over the tree pointer because funcs must be installed before
	// parsing.
	var t *template.Template
	funcs := template.FuncMap{
		"embed": func(name string, data any) (template.HTML, error) {
			var buf bytes.Buffer
			if err := t.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}

	parsed, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
	)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed", slog.Any("error", err))
		}
		return nil, err
	}
	t = parsed
	return &TemplateRenderer{t: t, logger: cfg.Logger}, nil
}

// RenderPage renders a page. Full layout for regular navigation, the bare
// page fragment for htmx swaps.
func (r *TemplateRenderer) RenderPage(w http.ResponseWriter, req *http.Request, data PageData) error {
	if WantsPartial(req) {
		return r.renderTemplate(w, data.Page, data)
	}
	return r.renderTemplate(w, "layout", data)
}

// RenderError renders the error page with the given HTTP status.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, req *http.Request, status int, data PageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, "error-layout", data); err != nil {
		r.logError("error-layout", err)
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, templateName string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logError(templateName, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	return nil
}

func (r *TemplateRenderer) logError(templateName string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}
