package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"slices"
	"time"
)

// Role represents an application's authorization role.
// Role names mirror the backend's role vocabulary so sessions can carry
// them without translation.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "usuario"
)

// Identity represents the authenticated principal as reported by the backend
// (or an SSO provider). Adapters map provider-specific shapes into this one.
type Identity struct {
	UserID    string // stable user identifier from the backend
	Email     string
	FullName  string
	Roles     []string // raw role names as the provider reports them
	ExpiresAt time.Time
}

// Session is the server-side record persisted for a signed-in user.
// ID is an opaque session identifier (random, URL-safe).
type Session struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Roles    []Role `json:"roles"`

	// BackendCookie carries the upstream API's own session credential so the
	// gateway can act on this user's behalf.
	BackendCookie string `json:"backend_cookie,omitempty"`

	// ReturnTo remembers the path the user was trying to reach before being
	// sent to sign-in, so a successful sign-in can land them back there.
	ReturnTo string `json:"return_to,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool { return slices.Contains(s.Roles, RoleAdmin) }

// HasAnyRole reports whether the session carries at least one of the
// required roles. An empty requirement never matches.
func (s Session) HasAnyRole(required []Role) bool {
	for _, r := range required {
		if slices.Contains(s.Roles, r) {
			return true
		}
	}
	return false
}

// State is the snapshot of authentication state the guard evaluates.
// Loading is the initial state for a session whose backend status has not
// resolved yet; while it holds, no redirect decision may be made.
//
// Invariant: IsAuthenticated=false implies Roles=nil and UserID="".
type State struct {
	Loading         bool
	IsAuthenticated bool
	Roles           []Role
	UserID          string
}

// Unauthenticated returns the terminal fail-closed state. Any backend
// failure (transport or non-200) normalizes to this.
func Unauthenticated() State {
	return State{Loading: false, IsAuthenticated: false, Roles: nil, UserID: ""}
}

// Authenticated builds a resolved, signed-in state from a session.
func Authenticated(s Session) State {
	return State{
		Loading:         false,
		IsAuthenticated: true,
		Roles:           slices.Clone(s.Roles),
		UserID:          s.UserID,
	}
}

// RolesFromNames converts raw provider role names to domain roles,
// preserving unknown names verbatim so new backend roles degrade gracefully.
func RolesFromNames(names []string) []Role {
	if len(names) == 0 {
		return nil
	}
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, Role(n))
	}
	return roles
}
