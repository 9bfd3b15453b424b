package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

// CredentialAuthenticator authenticates users against the backend API with
// email/password credentials. The returned cookie is the backend's own
// session credential, replayed by the gateway on the user's later calls.
type CredentialAuthenticator interface {
	// SignIn exchanges credentials for an identity and a backend cookie.
	SignIn(ctx context.Context, email, password string) (domainauth.Identity, string, error)

	// Status re-verifies a backend cookie against the session-status
	// endpoint and returns the current identity.
	Status(ctx context.Context, backendCookie string) (domainauth.Identity, error)

	// SignOut invalidates the backend session.
	SignOut(ctx context.Context, backendCookie string) error
}

// BeginInput carries inputs for initiating an SSO auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOProvider initiates and completes an authentication flow against an
// identity provider (the optional AUTH_MODE=oidc path).
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider role names to application roles.
type RoleMapper interface {
	Map(names []string) []domainauth.Role
}
