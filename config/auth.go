package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeBackend signs users in against the backend data API's own
	// credential endpoints. This is the normal production mode.
	AuthModeBackend AuthMode = "backend"
	// AuthModeOIDC uses an OIDC identity provider for sign-in.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a fixed local user table (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "backend", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: backend, oidc, mock)", v)
	}
}

// OIDCConfig contains identity provider configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls the mock identity (used when Mode=mock).
type DevAuthConfig struct {
	UserID   string   `env:"USER_ID"   envDefault:"dev-user"`
	Email    string   `env:"EMAIL"     envDefault:"dev@example.com"`
	Password string   `env:"PASSWORD"  envDefault:"dev-password"`
	FullName string   `env:"FULL_NAME" envDefault:"Dev User"`
	Roles    []string `env:"ROLES"     envDefault:"admin"        envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"backend"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminRole and UserRole are the backend's role names mapped to the
	// application's admin and regular-user roles.
	AdminRole string `env:"AUTH_ADMIN_ROLE" envDefault:"admin"`
	UserRole  string `env:"AUTH_USER_ROLE"  envDefault:"usuario"`

	// SessionTTL is the local session lifetime; it slides forward on
	// successful status verification.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
	if a.AdminRole == "" {
		a.AdminRole = "admin"
	}
	if a.UserRole == "" {
		a.UserRole = "usuario"
	}
}
