package bootstrap

import (
	"fmt"
	"strings"

	"github.com/limnolab/limno-ui-api/config"
	"github.com/limnolab/limno-ui-api/internal/adapters/backendauth"
	"github.com/limnolab/limno-ui-api/internal/adapters/devauth"
	"github.com/limnolab/limno-ui-api/internal/adapters/oidc"
	"github.com/limnolab/limno-ui-api/internal/gateway"
	"github.com/limnolab/limno-ui-api/internal/ports"
)

// BuildSSOProvider constructs the identity-provider adapter when Mode=oidc,
// nil otherwise.
//
//nolint:ireturn // the port interface is the useful return type here.
func BuildSSOProvider(cfg *config.AppConfig) (ports.SSOProvider, error) {
	if cfg.Auth.Mode != config.AuthModeOIDC {
		return nil, nil
	}
	provider, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.Auth.OIDC.ClientID,
		ClientSecret: cfg.Auth.OIDC.ClientSecret,
		RedirectURL:  strings.TrimSuffix(cfg.HTTP.BaseURL, "/") + "/auth/callback",
		Scope:        cfg.Auth.OIDC.Scope,
		DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
	})
	if err != nil {
		return nil, fmt.Errorf("build oidc provider: %w", err)
	}
	return provider, nil
}

// BuildAuthenticator constructs the credential authenticator: the backend
// API's own sign-in endpoints in normal operation, a fixed local user in
// mock mode.
//
//nolint:ireturn // the port interface is the useful return type here.
func BuildAuthenticator(cfg *config.AppConfig, api *gateway.Client) (ports.CredentialAuthenticator, error) {
	if cfg.Auth.Mode == config.AuthModeMock {
		return devauth.NewAuthenticator(devauth.Config{
			Users: []devauth.User{{
				UserID:   cfg.Auth.DevAuth.UserID,
				Email:    cfg.Auth.DevAuth.Email,
				Password: cfg.Auth.DevAuth.Password,
				FullName: cfg.Auth.DevAuth.FullName,
				Roles:    cfg.Auth.DevAuth.Roles,
			}},
			SessionDuration: cfg.Auth.SessionTTL,
		})
	}
	return backendauth.New(api, cfg.Auth.SessionTTL), nil
}
