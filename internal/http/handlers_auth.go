package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/service"
)

// AuthHandlers serves sign-in, sign-out, and the session status endpoint.
type AuthHandlers struct {
	Sessions     *service.SessionService
	Renderer     *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

// SignInPage renders the sign-in form.
func (h *AuthHandlers) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.renderSignIn(w, r, "")
}

func (h *AuthHandlers) renderSignIn(w http.ResponseWriter, r *http.Request, errMsg string) {
	err := h.Renderer.RenderPage(w, r, PageData{
		Page:      "page-sign-in",
		Title:     "Sign in",
		CSRFToken: GetCSRFToken(r),
		Error:     errMsg,
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// SignIn handles the credential form post.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignIn(w, r, "invalid form submission")
		return
	}

	returnTo := ""
	if c, err := r.Cookie(ReturnToCookieName); err == nil {
		returnTo = c.Value
	}

	result, err := h.Sessions.SignIn(r.Context(), service.SignInInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		ReturnTo: returnTo,
	})
	if err != nil {
		if apperrors.IsValidation(err) || apperrors.IsForbidden(err) {
			h.renderSignIn(w, r, err.Error())
			return
		}
		h.logError(r, "sign-in failed", err)
		h.renderSignIn(w, r, "sign-in is unavailable right now, try again shortly")
		return
	}

	h.setSessionCookie(w, r, result.Session.ID, time.Until(result.Session.ExpiresAt))
	clearCookie(w, ReturnToCookieName)

	if IsHTMX(r) {
		SetHXRedirect(w, result.RedirectTo)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

// SignOut ends the session and sends the user home. When the backend
// sign-out fails the session survives, so the cookie stays too and the user
// remains signed in on both sides.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if sessionID := sessionIDFromRequest(r); sessionID != "" {
		if err := h.Sessions.SignOut(r.Context(), sessionID); err != nil {
			h.logError(r, "sign-out failed", err)
			redirectHome(w, r)
			return
		}
	}
	clearCookie(w, SessionCookieName)
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		SetHXRedirect(w, "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Status reports the resolved authentication state as JSON. Page scripts
// poll it to keep their nav state honest.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state := h.Sessions.CheckStatus(r.Context(), sessionIDFromRequest(r))
	WriteJSON(w, http.StatusOK, map[string]any{
		"is_authenticated": state.IsAuthenticated,
		"roles":            state.Roles,
		"user_id":          state.UserID,
	})
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if maxAge <= 0 {
		maxAge = 3600
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil || forwardedHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *AuthHandlers) logError(r *http.Request, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.Error(msg, slog.String("path", r.URL.Path), slog.Any("error", err))
}

// handleUnauthorized clears the local session when the backend rejects its
// credential mid-flight, then sends the user to sign-in with their place
// recorded.
func handleUnauthorized(sessions *service.SessionService, w http.ResponseWriter, r *http.Request) {
	if sessionID := sessionIDFromRequest(r); sessionID != "" {
		_ = sessions.Invalidate(r.Context(), sessionID)
	}
	clearCookie(w, SessionCookieName)
	redirectToSignIn(w, r)
}

var errSSODisabled = errors.New("sso sign-in is not configured")
