package routespec

import (
	"testing"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path     string
		expected Class
	}{
		{"/", Public},
		{"/sign-in", Public},
		{"/sign-up", Public},
		{"/change-password/abc123", Public},
		{"/account-verified/tok-1", Public},
		{"/concept", Public},

		{"/admin/dashboard", PrivateKnown},
		{"/admin/manage-data/lakes", PrivateKnown},
		{"/admin/activity-log", PrivateKnown},
		{"/admin/anything-else", PrivateKnown},
		{"/admin/manage-data/lakes/5/delete", PrivateKnown},

		{"/data", PrivateKnown},
		{"/data/repositories", PrivateKnown},
		{"/data/repositories/42", PrivateKnown},
		{"/data/series/1/2/2024", PrivateKnown},
		{"/profile", PrivateKnown},

		{"/nope", Unknown},
		{"/data/repositories/42/extra", Unknown},
		{"/change-password", Unknown},
		{"/datadump", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestClassifyIsStable(t *testing.T) {
	paths := []string{"/", "/admin/dashboard", "/data", "/nope", "/change-password/t"}
	for _, p := range paths {
		first := Classify(p)
		for i := 0; i < 5; i++ {
			if got := Classify(p); got != first {
				t.Fatalf("Classify(%q) changed between calls: %v then %v", p, first, got)
			}
		}
	}
}

func TestRequiredRoles(t *testing.T) {
	adminOnly := []domainauth.Role{domainauth.RoleAdmin}
	anyRole := []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleUser}

	tests := []struct {
		path     string
		roles    []domainauth.Role
		required bool
	}{
		{"/admin/dashboard", adminOnly, true},
		{"/admin/settings/email-sender", adminOnly, true},
		// Form-post endpoints under /admin/ are covered by the prefix rule.
		{"/admin/manage-data/lakes/7/delete", adminOnly, true},
		{"/admin/upload-data/export", adminOnly, true},

		{"/data", anyRole, true},
		{"/data/repositories/3", anyRole, true},
		{"/data/series/1/2/2023", anyRole, true},
		{"/profile", anyRole, true},

		{"/", nil, false},
		{"/sign-in", nil, false},
		// The chat widget is mounted on public pages, so its endpoint carries
		// no role requirement.
		{"/api/chat", nil, false},
		{"/no-such-page", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			roles, ok := RequiredRoles(tt.path)
			if ok != tt.required {
				t.Fatalf("RequiredRoles(%q) ok = %v, want %v", tt.path, ok, tt.required)
			}
			if len(roles) != len(tt.roles) {
				t.Fatalf("RequiredRoles(%q) = %v, want %v", tt.path, roles, tt.roles)
			}
			for i := range roles {
				if roles[i] != tt.roles[i] {
					t.Errorf("RequiredRoles(%q)[%d] = %v, want %v", tt.path, i, roles[i], tt.roles[i])
				}
			}
		})
	}
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/data/repositories/{id}", "/data/repositories/9", true},
		{"/data/repositories/{id}", "/data/repositories", false},
		{"/data/repositories/{id}", "/data/repositories/9/extra", false},
		{"/change-password/{token}", "/change-password/a-b_c", true},
		{"/", "/", true},
	}
	for _, tt := range tests {
		if got := matches(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matches(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}
