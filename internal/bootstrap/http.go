package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	limnoui "github.com/limnolab/limno-ui-api"
	"github.com/limnolab/limno-ui-api/config"
	httpx "github.com/limnolab/limno-ui-api/internal/http"
)

// BuildHTTPHandler assembles the router over the constructed services. In
// dev mode templates and static assets load from disk so edits show up
// without a rebuild; otherwise they come from the embedded filesystems.
func BuildHTTPHandler(cfg *config.AppConfig, services *Services, logger *slog.Logger) (http.Handler, error) {
	templateFS, staticFS, err := frontendAssets(cfg.IsDev)
	if err != nil {
		return nil, err
	}
	return httpx.NewRouter(httpx.RouterServices{
		Sessions:     services.Sessions,
		Accounts:     services.Accounts,
		Lakes:        services.Lakes,
		Parameters:   services.Parameters,
		Measurements: services.Measurements,
		Imports:      services.Imports,
		Email:        services.Email,
		Audit:        services.Audit,
		Assistant:    services.Assistant,
		TemplateFS:   templateFS,
		StaticFS:     staticFS,
		CookieDomain: cfg.HTTP.CookieDomain,
		ExternalURL:  cfg.HTTP.BaseURL,
		SSOEnabled:   cfg.Auth.Mode == config.AuthModeOIDC,
		Logger:       logger,
	})
}

func frontendAssets(isDev bool) (templates fs.FS, static fs.FS, err error) {
	if isDev {
		return os.DirFS("frontend/templates"), os.DirFS("frontend/static"), nil
	}
	templates, err = fs.Sub(limnoui.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, nil, fmt.Errorf("embedded templates: %w", err)
	}
	static, err = fs.Sub(limnoui.StaticFS, "frontend/static")
	if err != nil {
		return nil, nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return templates, static, nil
}

// RunHTTPServer serves until ctx is canceled, then shuts down gracefully
// within the configured timeout.
func RunHTTPServer(ctx context.Context, cfg *config.AppConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("http server stopped")
	return <-errCh
}
