package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/limnolab/limno-ui-api/config"
	"github.com/limnolab/limno-ui-api/internal/adapters/authroles"
	redisstore "github.com/limnolab/limno-ui-api/internal/adapters/redis"
	"github.com/limnolab/limno-ui-api/internal/gateway"
	"github.com/limnolab/limno-ui-api/internal/service"
)

// Services bundles every constructed service plus the gateway client.
type Services struct {
	Gateway      *gateway.Client
	Sessions     *service.SessionService
	Accounts     *service.AccountService
	Lakes        *service.LakeService
	Parameters   *service.ParameterService
	Measurements *service.MeasurementService
	Imports      *service.ImportService
	Email        *service.EmailService
	Audit        *service.AuditService
	Assistant    *service.ChatService
}

// ServiceDeps carries the shared infrastructure the services build on.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the gateway client, auth adapters and feature services.
func NewServices(deps *ServiceDeps) (*Services, error) {
	cfg := deps.Config

	api, err := gateway.New(gateway.Options{
		BaseURL: cfg.Backend.APIURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build gateway: %w", err)
	}

	authenticator, err := BuildAuthenticator(cfg, api)
	if err != nil {
		return nil, fmt.Errorf("build authenticator: %w", err)
	}
	ssoProvider, err := BuildSSOProvider(cfg)
	if err != nil {
		return nil, err
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Auth: authenticator,
		SSO:  ssoProvider,
		Sessions: redisstore.NewSessionStoreWithPrefix(
			deps.RedisClient, cfg.Redis.KeyPrefix),
		Roles: authroles.StaticRoleMapper{
			AdminRole: cfg.Auth.AdminRole,
			UserRole:  cfg.Auth.UserRole,
		},
		Unauthorized: api.Unauthorized(),
		Logger:       deps.Logger,
		SessionTTL:   cfg.Auth.SessionTTL,
	})

	return &Services{
		Gateway:      api,
		Sessions:     sessions,
		Accounts:     service.NewAccountService(api),
		Lakes:        service.NewLakeService(api),
		Parameters:   service.NewParameterService(api),
		Measurements: service.NewMeasurementService(api),
		Imports:      service.NewImportService(api),
		Email:        service.NewEmailService(api),
		Audit:        service.NewAuditService(api),
		Assistant:    service.NewChatService(api),
	}, nil
}
