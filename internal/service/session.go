package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/ports"
)

// Landing pages after sign-in, by role.
const (
	AdminLanding = "/admin/dashboard"
	UserLanding  = "/data"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Auth     ports.CredentialAuthenticator
	SSO      ports.SSOProvider // optional, nil unless SSO mode is enabled
	Sessions ports.SessionStore
	Roles    ports.RoleMapper

	// Unauthorized delivers the gateway's coalesced 401 signal. Optional.
	Unauthorized <-chan struct{}

	Logger     *slog.Logger
	SessionTTL time.Duration // default 8h when zero
}

// SessionService orchestrates sign-in flows, session persistence, and
// authentication state resolution for the request guard.
type SessionService struct {
	auth     ports.CredentialAuthenticator
	sso      ports.SSOProvider
	sessions ports.SessionStore
	roles    ports.RoleMapper

	unauthorized <-chan struct{}
	rejections   atomic.Int64

	logger     *slog.Logger
	sessionTTL time.Duration

	// Coalesces concurrent status checks for the same session so a burst of
	// parallel requests costs one upstream verification.
	statusGroup singleflight.Group
}

var errSessionExpired = errors.New("session expired")

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = 8 * time.Hour
	}
	return &SessionService{
		auth:         opts.Auth,
		sso:          opts.SSO,
		sessions:     opts.Sessions,
		roles:        opts.Roles,
		unauthorized: opts.Unauthorized,
		logger:       logger,
		sessionTTL:   ttl,
	}
}

// SignInInput groups parameters for credential sign-in.
type SignInInput struct {
	Email    string
	Password string

	// ReturnTo is the path the user originally requested, if any. It wins
	// over the role-based landing page when it is a safe local path.
	ReturnTo string
}

// SignInResult contains the persisted session and where to send the user.
type SignInResult struct {
	Session    domainauth.Session
	RedirectTo string
}

// SignIn authenticates credentials against the backend, maps roles, and
// persists a session carrying the backend's own cookie.
func (s *SessionService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}
	if s.auth == nil {
		return nil, errors.New("credential sign-in is not configured")
	}

	identity, backendCookie, err := s.auth.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	session, err := s.persistSession(ctx, identity, backendCookie, input.ReturnTo)
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		Session:    session,
		RedirectTo: landingPath(session),
	}, nil
}

// BeginSSOResult contains the result of beginning an SSO flow.
type BeginSSOResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginSSO initiates an SSO authentication flow.
func (s *SessionService) BeginSSO(ctx context.Context, redirectURL string) (*BeginSSOResult, error) {
	if s.sso == nil {
		return nil, errors.New("sso sign-in is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.sso.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin sso flow: %w", err)
	}
	return &BeginSSOResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteSSOInput groups parameters for completing an SSO flow.
type CompleteSSOInput struct {
	Code     string
	State    string
	Nonce    string
	ReturnTo string
}

// CompleteSSO exchanges the authorization code for an identity and persists
// a session. SSO sessions carry no backend cookie; their validity is the
// token lifetime.
func (s *SessionService) CompleteSSO(ctx context.Context, input CompleteSSOInput) (*SignInResult, error) {
	if s.sso == nil {
		return nil, errors.New("sso sign-in is not configured")
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.sso.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	session, err := s.persistSession(ctx, identity, "", input.ReturnTo)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Session: session, RedirectTo: landingPath(session)}, nil
}

func (s *SessionService) persistSession(ctx context.Context, identity domainauth.Identity, backendCookie, returnTo string) (domainauth.Session, error) {
	roles := s.roles.Map(identity.Roles)
	if len(roles) == 0 {
		return domainauth.Session{}, apperrors.Forbidden("account has no recognized role")
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.sessionTTL)
	}

	session := domainauth.Session{
		ID:            generateSessionID(),
		UserID:        identity.UserID,
		Email:         identity.Email,
		FullName:      identity.FullName,
		Roles:         roles,
		BackendCookie: backendCookie,
		ReturnTo:      safeReturnPath(returnTo),
		ExpiresAt:     expiresAt,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID, cleaning up expired ones.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// CheckStatus resolves the authentication state for a session ID. It never
// returns an error: every failure mode, local or upstream, normalizes to the
// unauthenticated state. Concurrent checks for the same session share one
// upstream verification.
func (s *SessionService) CheckStatus(ctx context.Context, sessionID string) domainauth.State {
	if sessionID == "" {
		return domainauth.Unauthenticated()
	}

	v, _, _ := s.statusGroup.Do(sessionID, func() (any, error) {
		return s.resolveStatus(ctx, sessionID), nil
	})
	return v.(domainauth.State)
}

func (s *SessionService) resolveStatus(ctx context.Context, sessionID string) domainauth.State {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domainauth.Unauthenticated()
	}

	// Sessions without a backend cookie (SSO) are valid until they expire
	// locally; there is no upstream session to re-verify.
	if session.BackendCookie == "" || s.auth == nil {
		return domainauth.Authenticated(*session)
	}

	identity, err := s.auth.Status(ctx, session.BackendCookie)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			// The backend revoked its session. Ours is now worthless.
			if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
				s.logger.Warn("delete revoked session", "error", deleteErr)
			}
		} else {
			s.logger.Warn("session status check failed", "error", err)
		}
		return domainauth.Unauthenticated()
	}

	// Refresh roles from the backend's answer; role changes take effect on
	// the next status check rather than the next sign-in.
	if roles := s.roles.Map(identity.Roles); len(roles) > 0 {
		session.Roles = roles
	}
	session.ExpiresAt = time.Now().Add(s.sessionTTL)
	if saveErr := s.sessions.Save(ctx, *session); saveErr != nil {
		s.logger.Warn("refresh session", "error", saveErr)
	}

	return domainauth.Authenticated(*session)
}

// SignOut ends the backend session, then removes the local one. When the
// backend call fails the local session stays put and the error propagates;
// dropping it anyway would leave a live upstream session this side no longer
// knows about.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	session, err := s.GetSession(ctx, sessionID)
	if err == nil && session.BackendCookie != "" && s.auth != nil {
		if soErr := s.auth.SignOut(ctx, session.BackendCookie); soErr != nil {
			return fmt.Errorf("backend sign-out: %w", soErr)
		}
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Invalidate removes a session without contacting the backend. Handlers call
// it when a gateway response comes back 401 for that session's cookie.
func (s *SessionService) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Run consumes the gateway's unauthorized signal for the life of the
// process. The signal is coalesced and carries no session identity, so the
// consumer's job is visibility: it counts and logs rejections while the
// per-request 401 handling invalidates the specific session.
func (s *SessionService) Run(ctx context.Context) {
	if s.unauthorized == nil {
		<-ctx.Done()
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.unauthorized:
			n := s.rejections.Add(1)
			s.logger.Warn("backend rejected a session credential", "total_rejections", n)
		}
	}
}

// RejectionCount reports how many coalesced unauthorized signals have been
// observed since startup.
func (s *SessionService) RejectionCount() int64 {
	return s.rejections.Load()
}

// landingPath picks the post-sign-in destination: the recorded return path
// when present, otherwise the role's landing page. Admins land on the
// dashboard regardless of which other roles they hold.
func landingPath(session domainauth.Session) string {
	if session.ReturnTo != "" {
		return session.ReturnTo
	}
	if session.IsAdmin() {
		return AdminLanding
	}
	return UserLanding
}

// safeReturnPath accepts only local absolute paths, rejecting anything that
// could redirect off-site ("//evil.example", "https://...").
func safeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return ""
	}
	if strings.ContainsAny(p, "\\\r\n") {
		return ""
	}
	return p
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
