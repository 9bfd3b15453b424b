package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialAuthenticator = (*MockAuthenticator)(nil)
	_ ports.SSOProvider             = (*MockSSOProvider)(nil)
	_ ports.SessionStore            = (*MemorySessionStore)(nil)
	_ ports.RoleMapper              = (*StaticRoleMapper)(nil)
)

// MockAuthenticator simulates the backend credential endpoints for tests.
type MockAuthenticator struct {
	SignInFunc  func(ctx context.Context, email, password string) (domainauth.Identity, string, error)
	StatusFunc  func(ctx context.Context, backendCookie string) (domainauth.Identity, error)
	SignOutFunc func(ctx context.Context, backendCookie string) error

	// Deterministic values used when the Func hooks are nil.
	DefaultUser   domainauth.Identity
	DefaultCookie string

	mu           sync.Mutex
	statusCalls  int
	signOutCalls int
}

// NewMockAuthenticator creates a MockAuthenticator with sensible defaults.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			Email:     "mock.user@example.com",
			FullName:  "Mock User",
			Roles:     []string{"usuario"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
		DefaultCookie: "backend_session=mock",
	}
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (domainauth.Identity, string, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	user := m.DefaultUser
	user.Email = email
	return user, m.DefaultCookie, nil
}

func (m *MockAuthenticator) Status(ctx context.Context, backendCookie string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.statusCalls++
	m.mu.Unlock()
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, backendCookie)
	}
	if backendCookie != m.DefaultCookie {
		return domainauth.Identity{}, apperrors.Unauthorized("unknown cookie")
	}
	return m.DefaultUser, nil
}

func (m *MockAuthenticator) SignOut(ctx context.Context, backendCookie string) error {
	m.mu.Lock()
	m.signOutCalls++
	m.mu.Unlock()
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, backendCookie)
	}
	return nil
}

// StatusCalls reports how many times Status was invoked.
func (m *MockAuthenticator) StatusCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusCalls
}

// SignOutCalls reports how many times SignOut was invoked.
func (m *MockAuthenticator) SignOutCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signOutCalls
}

// MockSSOProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockSSOProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	callCount int
}

// NewMockSSOProvider creates a MockSSOProvider with sensible defaults.
func NewMockSSOProvider() *MockSSOProvider {
	return &MockSSOProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			Email:     "mock.user@example.com",
			FullName:  "Mock User",
			Roles:     []string{"usuario"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockSSOProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	return m.AuthURL, fmt.Sprintf("state-%d", m.callCount), fmt.Sprintf("nonce-%d", m.callCount), nil
}

func (m *MockSSOProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	user := m.DefaultUser
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// StaticRoleMapper keeps only the role names it knows about.
type StaticRoleMapper struct {
	AdminRole string
	UserRole  string
}

func (m StaticRoleMapper) Map(names []string) []domainauth.Role {
	var roles []domainauth.Role
	for _, n := range names {
		switch n {
		case m.AdminRole:
			roles = append(roles, domainauth.RoleAdmin)
		case m.UserRole:
			roles = append(roles, domainauth.RoleUser)
		}
	}
	return roles
}
