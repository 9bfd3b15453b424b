package auth

import "slices"

// Decision is the outcome of evaluating a guarded route against the current
// authentication state.
type Decision int

const (
	// DecisionLoading means the session status is still unresolved; render a
	// neutral placeholder and make no redirect decision.
	DecisionLoading Decision = iota
	// DecisionDeniedUnauthenticated means no signed-in user; send to sign-in
	// and record the attempted path as the return destination.
	DecisionDeniedUnauthenticated
	// DecisionDeniedWrongRole means the user is signed in but lacks every
	// required role. Rendered as not-found rather than auth-required so an
	// under-privileged user cannot confirm the route exists.
	DecisionDeniedWrongRole
	// DecisionAllowed means the guarded content may render.
	DecisionAllowed
)

// String returns a short name for logging.
func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionDeniedUnauthenticated:
		return "denied_unauthenticated"
	case DecisionDeniedWrongRole:
		return "denied_wrong_role"
	case DecisionAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Evaluate runs the guard state machine for one route group. It is pure and
// total: every (state, roles) pair maps to exactly one decision.
//
// Loading always wins; an unresolved session must never produce a denial or
// an allow in the same evaluation cycle.
func Evaluate(state State, requiredRoles []Role) Decision {
	if state.Loading {
		return DecisionLoading
	}
	if !state.IsAuthenticated {
		return DecisionDeniedUnauthenticated
	}
	if !hasAnyRole(state.Roles, requiredRoles) {
		return DecisionDeniedWrongRole
	}
	return DecisionAllowed
}

func hasAnyRole(have, required []Role) bool {
	for _, r := range required {
		if slices.Contains(have, r) {
			return true
		}
	}
	return false
}
