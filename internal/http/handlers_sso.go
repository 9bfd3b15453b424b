package httpx

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/limnolab/limno-ui-api/internal/service"
)

// SSO flow cookies live just long enough to complete one round trip to the
// identity provider.
const (
	ssoStateCookie = "sso_state"
	ssoNonceCookie = "sso_nonce"
	ssoCookieTTL   = 10 * time.Minute
)

// SSOHandlers serves the optional identity-provider sign-in flow.
type SSOHandlers struct {
	Auth         *AuthHandlers
	RedirectBase string // external URL of this service, e.g. https://lakes.example.org
}

// Begin starts the SSO flow by redirecting to the provider.
func (h *SSOHandlers) Begin(w http.ResponseWriter, r *http.Request) {
	result, err := h.Auth.Sessions.BeginSSO(r.Context(), h.RedirectBase+"/auth/callback")
	if err != nil {
		h.Auth.logError(r, "begin sso", err)
		http.Error(w, errSSODisabled.Error(), http.StatusNotFound)
		return
	}

	secure := r.TLS != nil || forwardedHTTPS(r)
	setFlowCookie(w, ssoStateCookie, result.State, secure)
	setFlowCookie(w, ssoNonceCookie, result.Nonce, secure)
	http.Redirect(w, r, result.AuthURL, http.StatusSeeOther)
}

// Callback completes the SSO flow: state check, code exchange, session.
func (h *SSOHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(ssoStateCookie)
	if err != nil {
		http.Error(w, "missing state", http.StatusBadRequest)
		return
	}
	nonceCookie, err := r.Cookie(ssoNonceCookie)
	if err != nil {
		http.Error(w, "missing nonce", http.StatusBadRequest)
		return
	}
	clearCookie(w, ssoStateCookie)
	clearCookie(w, ssoNonceCookie)

	state := r.URL.Query().Get("state")
	if subtle.ConstantTimeCompare([]byte(state), []byte(stateCookie.Value)) != 1 {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	returnTo := ""
	if c, cookieErr := r.Cookie(ReturnToCookieName); cookieErr == nil {
		returnTo = c.Value
	}

	result, err := h.Auth.Sessions.CompleteSSO(r.Context(), service.CompleteSSOInput{
		Code:     r.URL.Query().Get("code"),
		State:    state,
		Nonce:    nonceCookie.Value,
		ReturnTo: returnTo,
	})
	if err != nil {
		h.Auth.logError(r, "complete sso", err)
		http.Error(w, "sign-in failed", http.StatusBadGateway)
		return
	}

	h.Auth.setSessionCookie(w, r, result.Session.ID, time.Until(result.Session.ExpiresAt))
	clearCookie(w, ReturnToCookieName)
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

func setFlowCookie(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ssoCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
