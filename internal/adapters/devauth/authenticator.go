package devauth

// Package devauth provides a config-driven CredentialAuthenticator for local
// development (AUTH_MODE=mock). It accepts a fixed set of users and issues
// synthetic backend cookies held in memory, so the dashboard can be exercised
// without the data API running.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/ports"
)

// User is one local development account.
type User struct {
	UserID   string
	Email    string
	Password string
	FullName string
	Roles    []string
}

// Config controls the dev authenticator behavior.
type Config struct {
	Users           []User
	SessionDuration time.Duration // default 8h when zero
}

// Authenticator implements ports.CredentialAuthenticator against an
// in-memory user table.
type Authenticator struct {
	users           map[string]User // keyed by lowercased email
	sessionDuration time.Duration

	mu      sync.Mutex
	cookies map[string]session // issued cookie -> session
}

type session struct {
	email     string
	expiresAt time.Time
}

var _ ports.CredentialAuthenticator = (*Authenticator)(nil)

// NewAuthenticator constructs a dev authenticator from Config.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if len(cfg.Users) == 0 {
		return nil, errors.New("dev auth: at least one user is required")
	}
	users := make(map[string]User, len(cfg.Users))
	for _, u := range cfg.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("dev auth: user %q needs email and password", u.UserID)
		}
		users[strings.ToLower(u.Email)] = u
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Authenticator{
		users:           users,
		sessionDuration: dur,
		cookies:         make(map[string]session),
	}, nil
}

func (a *Authenticator) SignIn(_ context.Context, email, password string) (domainauth.Identity, string, error) {
	u, ok := a.users[strings.ToLower(email)]
	if !ok || u.Password != password {
		return domainauth.Identity{}, "", apperrors.Validation("incorrect email or password")
	}

	token, err := randomToken(32)
	if err != nil {
		return domainauth.Identity{}, "", fmt.Errorf("generate dev cookie: %w", err)
	}
	cookie := "dev_session=" + token
	expiresAt := time.Now().Add(a.sessionDuration)

	a.mu.Lock()
	a.cookies[cookie] = session{email: strings.ToLower(u.Email), expiresAt: expiresAt}
	a.mu.Unlock()

	return a.identityFor(u, expiresAt), cookie, nil
}

func (a *Authenticator) Status(_ context.Context, backendCookie string) (domainauth.Identity, error) {
	a.mu.Lock()
	sess, ok := a.cookies[backendCookie]
	if ok && time.Now().After(sess.expiresAt) {
		delete(a.cookies, backendCookie)
		ok = false
	}
	a.mu.Unlock()
	if !ok {
		return domainauth.Identity{}, apperrors.Unauthorized("session expired")
	}
	u := a.users[sess.email]
	return a.identityFor(u, sess.expiresAt), nil
}

func (a *Authenticator) SignOut(_ context.Context, backendCookie string) error {
	a.mu.Lock()
	delete(a.cookies, backendCookie)
	a.mu.Unlock()
	return nil
}

func (a *Authenticator) identityFor(u User, expiresAt time.Time) domainauth.Identity {
	return domainauth.Identity{
		UserID:    u.UserID,
		Email:     u.Email,
		FullName:  u.FullName,
		Roles:     append([]string(nil), u.Roles...),
		ExpiresAt: expiresAt,
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
