// Package routespec holds the single authoritative route table for the
// application. The HTTP router registers handlers from this table and the
// auth guard classifies redirect decisions against it; keeping both on one
// table is deliberate, since divergent copies of the classification logic
// are a known bug class.
package routespec

import (
	"strings"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

// Class is the access classification of a request path.
type Class int

const (
	// Public paths render without authentication.
	Public Class = iota
	// PrivateKnown paths exist but require authentication (and possibly a
	// specific role).
	PrivateKnown
	// Unknown paths match nothing in the table and render the 404 view.
	Unknown
)

func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case PrivateKnown:
		return "private"
	default:
		return "unknown"
	}
}

// Route is one entry of the table. Patterns use the net/http wildcard form
// ("/change-password/{token}"); Roles is nil for public routes.
type Route struct {
	Pattern string
	Roles   []domainauth.Role
}

var (
	adminRoles = []domainauth.Role{domainauth.RoleAdmin}
	anyRoles   = []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleUser}
)

// publicRoutes are reachable without a session.
var publicRoutes = []Route{
	{Pattern: "/"},
	{Pattern: "/sign-in"},
	{Pattern: "/sign-up"},
	{Pattern: "/forgot-password"},
	{Pattern: "/change-password/{token}"},
	{Pattern: "/link-expired"},
	{Pattern: "/account-verified/{token}"},
	{Pattern: "/contact-us"},
	{Pattern: "/auth-required"},
	{Pattern: "/concept"},
	{Pattern: "/activities"},
	{Pattern: "/news"},
}

// adminRoutes documents the admin page set. Access control for them comes
// from the /admin/ prefix rule in Classify and RequiredRoles, which also
// covers the form-post and fragment endpoints hanging off these pages.
var adminRoutes = []Route{
	{Pattern: "/admin/dashboard", Roles: adminRoles},
	{Pattern: "/admin/manage-data/lakes", Roles: adminRoles},
	{Pattern: "/admin/manage-data/parameters", Roles: adminRoles},
	{Pattern: "/admin/manage-data/measurements", Roles: adminRoles},
	{Pattern: "/admin/upload-data", Roles: adminRoles},
	{Pattern: "/admin/activity-log", Roles: adminRoles},
	{Pattern: "/admin/settings/email-sender", Roles: adminRoles},
}

// userRoutes require any authenticated role.
var userRoutes = []Route{
	{Pattern: "/data", Roles: anyRoles},
	{Pattern: "/data/repositories", Roles: anyRoles},
	{Pattern: "/data/repositories/{id}", Roles: anyRoles},
	{Pattern: "/data/series/{lake}/{parameter}/{year}", Roles: anyRoles},
	{Pattern: "/profile", Roles: anyRoles},
}

// PublicRoutes returns the public route group.
func PublicRoutes() []Route { return publicRoutes }

// AdminRoutes returns the admin-only route group.
func AdminRoutes() []Route { return adminRoutes }

// UserRoutes returns the authenticated-any route group.
func UserRoutes() []Route { return userRoutes }

// AdminRequiredRoles returns the role set gating the admin group.
func AdminRequiredRoles() []domainauth.Role { return adminRoles }

// UserRequiredRoles returns the role set gating the authenticated-any group.
func UserRequiredRoles() []domainauth.Role { return anyRoles }

// Classify maps a request path to its access class. It is pure and total:
// every path yields exactly one class, and repeated calls with the same
// input always agree.
func Classify(path string) Class {
	for _, r := range publicRoutes {
		if matches(r.Pattern, path) {
			return Public
		}
	}
	if strings.HasPrefix(path, "/admin/") {
		return PrivateKnown
	}
	for _, r := range userRoutes {
		if matches(r.Pattern, path) {
			return PrivateKnown
		}
	}
	return Unknown
}

// RequiredRoles returns the roles gating a path, or nil with ok=false when
// the path is public or unknown. Everything under /admin/ is admin gated,
// including the form-post and fragment endpoints that hang off the page
// routes, so an endpoint added to the router can never escape the guard.
func RequiredRoles(path string) ([]domainauth.Role, bool) {
	if strings.HasPrefix(path, "/admin/") {
		return adminRoles, true
	}
	for _, r := range userRoutes {
		if matches(r.Pattern, path) {
			return r.Roles, true
		}
	}
	return nil, false
}

// matches compares a pattern against a concrete path segment by segment.
// A "{...}" segment matches any single non-empty segment.
func matches(pattern, path string) bool {
	if pattern == path {
		return true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i, p := range ps {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if p != xs[i] {
			return false
		}
	}
	return true
}
