package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/service"
)

// UIHandlers serves the signed-in dashboard screens.
type UIHandlers struct {
	Renderer     *TemplateRenderer
	Sessions     *service.SessionService
	Lakes        *service.LakeService
	Parameters   *service.ParameterService
	Measurements *service.MeasurementService
	Imports      *service.ImportService
	Email        *service.EmailService
	Audit        *service.AuditService
	Assistant    *service.ChatService
	Logger       *slog.Logger
}

func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, data PageData) {
	data.CSRFToken = GetCSRFToken(r)
	if data.Session == nil {
		data.Session = GetSessionFromContext(r.Context())
	}
	if err := h.Renderer.RenderPage(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// session returns the request's session. The guard attaches one before any
// private handler runs, so the zero value only appears on public routes.
func (h *UIHandlers) session(r *http.Request) domainauth.Session {
	if s, ok := GetUserSessionFromContext(r.Context()); ok {
		return *s
	}
	return domainauth.Session{}
}

// fail translates a service error into the right response. A 401 from the
// backend means our stored credential died: drop the session and send the
// user to sign in again.
func (h *UIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsUnauthorized(err) {
		handleUnauthorized(h.Sessions, w, r)
		return
	}
	if h.Logger != nil {
		h.Logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	if IsHTMX(r) || wantsJSON(r) {
		WriteAppError(w, err)
		return
	}
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	case apperrors.IsForbidden(err):
		status = http.StatusForbidden
	case apperrors.IsUpstream(err):
		status = http.StatusBadGateway
	}
	data := PageData{
		Page:    "page-error",
		Title:   "Something went wrong",
		Session: GetSessionFromContext(r.Context()),
		Error:   err.Error(),
	}
	_ = h.Renderer.RenderError(w, r, status, data)
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}

// NotFound renders the not-found page. It doubles as the landing spot for
// signed-in users who lack the role a route demands.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(h.Renderer, w, r)
}

// RenderNotFound writes the styled 404 page.
func RenderNotFound(renderer *TemplateRenderer, w http.ResponseWriter, r *http.Request) {
	if renderer == nil {
		http.NotFound(w, r)
		return
	}
	data := PageData{
		Page:    "page-notfound",
		Title:   "Page not found",
		Session: GetSessionFromContext(r.Context()),
	}
	if err := renderer.RenderError(w, r, http.StatusNotFound, data); err != nil {
		http.NotFound(w, r)
	}
}
