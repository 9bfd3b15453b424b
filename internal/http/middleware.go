package httpx

import (
	"compress/gzip"
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/routespec"
)

// Cookie names shared by middleware and handlers.
const (
	SessionCookieName  = "session_id"
	ReturnToCookieName = "return_to"
)

// SessionResolver is the slice of the session service the middleware needs.
type SessionResolver interface {
	CheckStatus(ctx context.Context, sessionID string) domainauth.State
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Guard enforces the route access rules. Public routes pass through with the
// session attached when one exists. Private routes resolve the session's
// authentication state and act on the access decision: unauthenticated users
// go to sign-in with their destination recorded, users lacking the route's
// roles get the not-found page, and only allowed requests reach the handler.
func Guard(sessions SessionResolver, renderer *TemplateRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := sessionIDFromRequest(r)

			required, private := routespec.RequiredRoles(r.URL.Path)
			if !private {
				if sessionID != "" {
					if sess, err := sessions.GetSession(r.Context(), sessionID); err == nil {
						r = r.WithContext(SetSessionInContext(r.Context(), sess))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			state := sessions.CheckStatus(r.Context(), sessionID)
			switch domainauth.Evaluate(state, required) {
			case domainauth.DecisionAllowed:
				sess, err := sessions.GetSession(r.Context(), sessionID)
				if err != nil {
					redirectToSignIn(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))

			case domainauth.DecisionDeniedWrongRole:
				RenderNotFound(renderer, w, r)

			case domainauth.DecisionLoading:
				// The state resolved synchronously above, so this only
				// happens if a caller injects an unresolved snapshot. Hold
				// the line without redirecting.
				w.Header().Set("Retry-After", "1")
				http.Error(w, "resolving session", http.StatusServiceUnavailable)

			default:
				redirectToSignIn(w, r)
			}
		})
	}
}

func sessionIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// redirectToSignIn records where the user was headed and sends them to the
// sign-in page. htmx requests get a client-side redirect header instead of
// a 303 so the swap machinery does not follow it.
func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	if returnTo := safeRedirectPath(r.URL.RequestURI()); returnTo != "" && returnTo != "/" {
		http.SetCookie(w, &http.Cookie{
			Name:     ReturnToCookieName,
			Value:    returnTo,
			Path:     "/",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if IsHTMX(r) {
		SetHXRedirect(w, "/sign-in")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// safeRedirectPath accepts only local absolute paths.
func safeRedirectPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return ""
	}
	if strings.ContainsAny(p, "\\\r\n") {
		return ""
	}
	return p
}

// Compression returns a middleware that gzips compressible responses when
// the client advertises support.
func Compression() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")
			gw := &gzipWriter{ResponseWriter: w}
			defer gw.close()
			next.ServeHTTP(gw, r)
		})
	}
}

type gzipWriter struct {
	http.ResponseWriter
	gz      *gzip.Writer
	decided bool
}

var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

func (w *gzipWriter) WriteHeader(status int) {
	if !w.decided {
		w.decided = true
		ct := w.Header().Get("Content-Type")
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
		ct = strings.TrimSpace(strings.ToLower(ct))
		bad := status < 200 || status == http.StatusNoContent || status == http.StatusNotModified
		if !bad && compressibleTypes[ct] && w.Header().Get("Content-Encoding") == "" {
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Del("Content-Length")
			w.gz = gzip.NewWriter(w.ResponseWriter)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipWriter) Write(b []byte) (int, error) {
	if !w.decided {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipWriter) close() {
	if w.gz != nil {
		w.gz.Close()
	}
}
