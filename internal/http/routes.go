package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/limnolab/limno-ui-api/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions     *service.SessionService
	Accounts     *service.AccountService
	Lakes        *service.LakeService
	Parameters   *service.ParameterService
	Measurements *service.MeasurementService
	Imports      *service.ImportService
	Email        *service.EmailService
	Audit        *service.AuditService
	Assistant    *service.ChatService

	TemplateFS fs.FS
	StaticFS   fs.FS

	CookieDomain string
	// ExternalURL is the public base URL of this service, used to build the
	// SSO callback address. Empty disables the SSO routes.
	ExternalURL string
	SSOEnabled  bool

	Logger *slog.Logger
}

// NewRouter builds the full handler chain: mux, styled 404 fallback, then
// guard, CSRF, compression, logging and panic recovery from the inside out.
func NewRouter(services RouterServices) (http.Handler, error) {
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: services.TemplateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, err
	}

	authHandlers := &AuthHandlers{
		Sessions:     services.Sessions,
		Renderer:     renderer,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	accountHandlers := &AccountHandlers{
		Accounts: services.Accounts,
		Renderer: renderer,
		Logger:   services.Logger,
	}
	uiHandlers := &UIHandlers{
		Renderer:     renderer,
		Sessions:     services.Sessions,
		Lakes:        services.Lakes,
		Parameters:   services.Parameters,
		Measurements: services.Measurements,
		Imports:      services.Imports,
		Email:        services.Email,
		Audit:        services.Audit,
		Assistant:    services.Assistant,
		Logger:       services.Logger,
	}

	mux := http.NewServeMux()
	registerPublicRoutes(mux, uiHandlers)
	registerAuthRoutes(mux, authHandlers)
	registerAccountRoutes(mux, accountHandlers)
	registerAdminRoutes(mux, uiHandlers)
	registerDataRoutes(mux, uiHandlers)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	if services.SSOEnabled {
		sso := &SSOHandlers{Auth: authHandlers, RedirectBase: strings.TrimSuffix(services.ExternalURL, "/")}
		mux.HandleFunc("GET /auth/sso/start", sso.Begin)
		mux.HandleFunc("GET /auth/callback", sso.Callback)
	}

	mux.Handle("GET /static/", staticHandler(services.StaticFS))

	var handler http.Handler = &notFoundHandler{mux: mux, ui: uiHandlers}
	handler = Guard(services.Sessions, renderer)(handler)
	handler = CSRFProtection()(handler)
	handler = Compression()(handler)
	handler = Logging(services.Logger)(handler)
	handler = Recover(services.Logger)(handler)
	return handler, nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func registerPublicRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /concept", h.Concept)
	mux.HandleFunc("GET /activities", h.Activities)
	mux.HandleFunc("GET /news", h.News)
	mux.HandleFunc("GET /contact-us", h.ContactUs)
	mux.HandleFunc("GET /auth-required", h.AuthRequired)
	mux.HandleFunc("POST /api/chat", h.Chat)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /sign-in", h.SignInPage)
	mux.HandleFunc("POST /sign-in", h.SignIn)
	mux.HandleFunc("POST /sign-out", h.SignOut)
	mux.HandleFunc("GET /api/session", h.Status)
}

func registerAccountRoutes(mux *http.ServeMux, h *AccountHandlers) {
	mux.HandleFunc("GET /sign-up", h.SignUpPage)
	mux.HandleFunc("POST /sign-up", h.SignUp)
	mux.HandleFunc("GET /account-verified/{token}", h.Verify)
	mux.HandleFunc("GET /forgot-password", h.ForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
	mux.HandleFunc("GET /change-password/{token}", h.ChangePasswordPage)
	mux.HandleFunc("POST /change-password/{token}", h.ChangePassword)
	mux.HandleFunc("GET /link-expired", h.LinkExpired)
}

func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /admin/dashboard", h.AdminDashboard)

	mux.HandleFunc("GET /admin/manage-data/lakes", h.AdminLakes)
	mux.HandleFunc("POST /admin/manage-data/lakes", h.AdminLakeCreate)
	mux.HandleFunc("POST /admin/manage-data/lakes/{id}", h.AdminLakeUpdate)
	mux.HandleFunc("POST /admin/manage-data/lakes/{id}/delete", h.AdminLakeDelete)
	mux.HandleFunc("GET /admin/manage-data/lakes/provinces/{id}/cities", h.AdminLakeCities)

	mux.HandleFunc("GET /admin/manage-data/parameters", h.AdminParameters)
	mux.HandleFunc("POST /admin/manage-data/parameters", h.AdminParameterCreate)
	mux.HandleFunc("POST /admin/manage-data/parameters/{id}", h.AdminParameterUpdate)
	mux.HandleFunc("POST /admin/manage-data/parameters/{id}/delete", h.AdminParameterDelete)

	mux.HandleFunc("GET /admin/manage-data/measurements", h.AdminMeasurements)
	mux.HandleFunc("POST /admin/manage-data/measurements/values/{id}", h.AdminMeasurementValueUpdate)

	mux.HandleFunc("GET /admin/upload-data", h.AdminImport)
	mux.HandleFunc("POST /admin/upload-data", h.AdminImportUpload)
	mux.HandleFunc("GET /admin/upload-data/export", h.AdminExport)

	mux.HandleFunc("GET /admin/settings/email-sender", h.AdminEmailSender)
	mux.HandleFunc("POST /admin/settings/email-sender", h.AdminEmailSave)
	mux.HandleFunc("POST /admin/settings/email-sender/{id}/delete", h.AdminEmailDelete)
	mux.HandleFunc("POST /admin/settings/email-sender/test", h.AdminEmailTest)

	mux.HandleFunc("GET /admin/activity-log", h.AdminAudit)
}

func registerDataRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /data", h.Data)
	mux.HandleFunc("GET /data/series/{lake}/{parameter}/{year}", h.MeasurementSeries)
	mux.HandleFunc("GET /data/repositories", h.DataRepositories)
	mux.HandleFunc("GET /data/repositories/{id}", h.DataRepository)
	mux.HandleFunc("GET /profile", h.Profile)
}

// staticHandler serves /static/* from the embedded assets, falling back to
// disk when no filesystem was supplied.
func staticHandler(staticFS fs.FS) http.Handler {
	var root http.FileSystem
	if staticFS != nil {
		root = http.FS(staticFS)
	} else {
		root = http.Dir("frontend/static")
	}
	inner := http.StripPrefix("/static/", http.FileServer(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		inner.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps the mux and swaps bare 404s for the styled page.
type notFoundHandler struct {
	mux *http.ServeMux
	ui  *UIHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// Missing static assets keep the file server's plain response.
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		h.ui.NotFound(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers the response so the 404 decision can happen after
// dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = w.Write(c.buf.Bytes())
}
