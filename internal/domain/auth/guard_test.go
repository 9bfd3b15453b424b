package auth

import (
	"slices"
	"testing"
)

func TestEvaluate(t *testing.T) {
	adminOnly := []Role{RoleAdmin}
	anyRole := []Role{RoleAdmin, RoleUser}

	tests := []struct {
		name     string
		state    State
		required []Role
		want     Decision
	}{
		{
			name:     "loading wins over everything",
			state:    State{Loading: true, IsAuthenticated: true, Roles: []Role{RoleAdmin}},
			required: adminOnly,
			want:     DecisionLoading,
		},
		{
			name:     "loading unauthenticated",
			state:    State{Loading: true},
			required: adminOnly,
			want:     DecisionLoading,
		},
		{
			name:     "unauthenticated is denied",
			state:    Unauthenticated(),
			required: anyRole,
			want:     DecisionDeniedUnauthenticated,
		},
		{
			name:     "authenticated without required role",
			state:    State{IsAuthenticated: true, Roles: []Role{RoleUser}, UserID: "u1"},
			required: adminOnly,
			want:     DecisionDeniedWrongRole,
		},
		{
			name:     "authenticated with no roles at all",
			state:    State{IsAuthenticated: true, UserID: "u1"},
			required: anyRole,
			want:     DecisionDeniedWrongRole,
		},
		{
			name:     "empty requirement never matches",
			state:    State{IsAuthenticated: true, Roles: []Role{RoleAdmin}, UserID: "u1"},
			required: nil,
			want:     DecisionDeniedWrongRole,
		},
		{
			name:     "admin on admin route",
			state:    State{IsAuthenticated: true, Roles: []Role{RoleAdmin}, UserID: "u1"},
			required: adminOnly,
			want:     DecisionAllowed,
		},
		{
			name:     "user on any-role route",
			state:    State{IsAuthenticated: true, Roles: []Role{RoleUser}, UserID: "u2"},
			required: anyRole,
			want:     DecisionAllowed,
		},
		{
			name:     "unknown extra role does not grant access",
			state:    State{IsAuthenticated: true, Roles: []Role{"auditor"}, UserID: "u3"},
			required: adminOnly,
			want:     DecisionDeniedWrongRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.state, tt.required); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsStable(t *testing.T) {
	state := State{IsAuthenticated: true, Roles: []Role{RoleUser}, UserID: "u1"}
	required := []Role{RoleAdmin, RoleUser}
	first := Evaluate(state, required)
	for i := 0; i < 10; i++ {
		if got := Evaluate(state, required); got != first {
			t.Fatalf("Evaluate changed between calls: %v then %v", first, got)
		}
	}
}

func TestDecisionString(t *testing.T) {
	tests := []struct {
		d    Decision
		want string
	}{
		{DecisionLoading, "loading"},
		{DecisionDeniedUnauthenticated, "denied_unauthenticated"},
		{DecisionDeniedWrongRole, "denied_wrong_role"},
		{DecisionAllowed, "allowed"},
		{Decision(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Decision(%d).String() = %q, want %q", int(tt.d), got, tt.want)
		}
	}
}

func TestUnauthenticatedInvariant(t *testing.T) {
	s := Unauthenticated()
	if s.Loading || s.IsAuthenticated || s.Roles != nil || s.UserID != "" {
		t.Errorf("Unauthenticated() = %+v, want zero fail-closed state", s)
	}
}

func TestAuthenticatedClonesRoles(t *testing.T) {
	sess := Session{UserID: "u1", Roles: []Role{RoleAdmin}}
	state := Authenticated(sess)
	sess.Roles[0] = RoleUser
	if state.Roles[0] != RoleAdmin {
		t.Error("Authenticated state shares the session's role slice")
	}
	if !state.IsAuthenticated || state.Loading {
		t.Errorf("Authenticated() = %+v, want resolved signed-in state", state)
	}
}

func TestSessionRoleHelpers(t *testing.T) {
	admin := Session{Roles: []Role{RoleAdmin}}
	user := Session{Roles: []Role{RoleUser}}

	if !admin.IsAdmin() {
		t.Error("admin session should report IsAdmin")
	}
	if user.IsAdmin() {
		t.Error("user session should not report IsAdmin")
	}
	if !user.HasAnyRole([]Role{RoleAdmin, RoleUser}) {
		t.Error("user session should match an any-role requirement")
	}
	if user.HasAnyRole(nil) {
		t.Error("empty requirement must never match")
	}
}

func TestRolesFromNames(t *testing.T) {
	if got := RolesFromNames(nil); got != nil {
		t.Errorf("RolesFromNames(nil) = %v, want nil", got)
	}
	got := RolesFromNames([]string{"admin", "observer"})
	want := []Role{RoleAdmin, "observer"}
	if !slices.Equal(got, want) {
		t.Errorf("RolesFromNames = %v, want %v", got, want)
	}
}
