// Package backendauth implements credential authentication against the
// limnology backend API: sign-in, session-status verification, and
// sign-out, all through the gateway's normalized results.
package backendauth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/gateway"
	"github.com/limnolab/limno-ui-api/internal/ports"
)

// SignInClient is the slice of the gateway the authenticator needs.
type SignInClient interface {
	SignIn(ctx context.Context, email, password string) (gateway.Result, gateway.Credential, error)
	Get(ctx context.Context, cred gateway.Credential, rel string, query url.Values) (gateway.Result, error)
	PostJSON(ctx context.Context, cred gateway.Credential, rel string, body any) (gateway.Result, error)
}

// Authenticator implements ports.CredentialAuthenticator over the gateway.
type Authenticator struct {
	api        SignInClient
	sessionTTL time.Duration
}

var _ ports.CredentialAuthenticator = (*Authenticator)(nil)

// New constructs an Authenticator. sessionTTL bounds the local session
// lifetime; the backend cookie may expire sooner, which status verification
// catches.
func New(api SignInClient, sessionTTL time.Duration) *Authenticator {
	if sessionTTL == 0 {
		sessionTTL = 8 * time.Hour
	}
	return &Authenticator{api: api, sessionTTL: sessionTTL}
}

// SignIn posts credentials to users/signIn. Validation failures surface the
// backend's own detail so the sign-in form can show it inline.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (domainauth.Identity, string, error) {
	res, cred, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return domainauth.Identity{}, "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "sign in")
	}
	if !res.OK {
		if res.Status == http.StatusUnauthorized || res.Status == http.StatusBadRequest {
			return domainauth.Identity{}, "", apperrors.Validation(res.ErrorMessage())
		}
		return domainauth.Identity{}, "", apperrors.Upstream(res.ErrorMessage())
	}

	identity, err := gateway.IdentityFromStatus(res)
	if err != nil {
		// Some deployments return only a confirmation envelope from signIn;
		// fall back to the status endpoint with the fresh cookie.
		identity, err = a.Status(ctx, cred.Cookie)
		if err != nil {
			return domainauth.Identity{}, "", err
		}
	}
	identity.ExpiresAt = time.Now().Add(a.sessionTTL)
	return identity, cred.Cookie, nil
}

// Status verifies the backend cookie against users/get/current.
func (a *Authenticator) Status(ctx context.Context, backendCookie string) (domainauth.Identity, error) {
	cred := gateway.Credential{Cookie: backendCookie}
	res, err := a.api.Get(ctx, cred, "users/get/current", nil)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "check session status")
	}
	if !res.OK {
		return domainauth.Identity{}, apperrors.Unauthorized(res.ErrorMessage())
	}
	identity, err := gateway.IdentityFromStatus(res)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode session status")
	}
	identity.ExpiresAt = time.Now().Add(a.sessionTTL)
	return identity, nil
}

// SignOut calls users/logout. A non-200 is an error so the caller can avoid
// desynchronizing local state from server truth.
func (a *Authenticator) SignOut(ctx context.Context, backendCookie string) error {
	cred := gateway.Credential{Cookie: backendCookie}
	res, err := a.api.PostJSON(ctx, cred, "users/logout", nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "sign out")
	}
	if !res.OK {
		return apperrors.Upstream(res.ErrorMessage())
	}
	return nil
}
