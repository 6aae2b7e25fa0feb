package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/superaisp/acceso-api/config"
	"github.com/superaisp/acceso-api/internal/adapters/allowlist"
	"github.com/superaisp/acceso-api/internal/adapters/googleauth"
	"github.com/superaisp/acceso-api/internal/adapters/sessionjwt"
	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	"github.com/superaisp/acceso-api/internal/observability/statsd"
	"github.com/superaisp/acceso-api/internal/ports"
	"github.com/superaisp/acceso-api/internal/service"
)

// AuthDeps groups dependencies for building the auth service.
type AuthDeps struct {
	Config  *config.AppConfig
	DB      *sql.DB
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// BuildAuthService wires the token verifier, allow-list source, and session
// codec into an AuthService according to configuration.
func BuildAuthService(ctx context.Context, deps AuthDeps) (*service.AuthService, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	verifier, err := googleauth.NewVerifier(ctx, googleauth.VerifierConfig{
		ClientID:   cfg.Auth.GoogleClientID,
		HTTPClient: &http.Client{Timeout: cfg.Auth.VerifyTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("build token verifier: %w", err)
	}

	source, err := buildAllowlistSource(cfg, deps.DB)
	if err != nil {
		return nil, fmt.Errorf("build allow-list source: %w", err)
	}

	allowlistSvc := service.NewAllowlistService(service.AllowlistServiceOptions{
		Source:          source,
		RefreshInterval: cfg.Allowlist.RefreshInterval,
		FetchTimeout:    cfg.Allowlist.FetchTimeout,
		Logger:          logger,
	})

	codec, err := sessionjwt.NewCodec(sessionjwt.CodecConfig{
		Secret: cfg.Auth.SessionSecret,
		TTL:    cfg.Auth.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build session codec: %w", err)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Verifier:    verifier,
		Allowlist:   allowlistSvc,
		Sessions:    codec,
		SessionTTL:  cfg.Auth.SessionTTL,
		DefaultRole: domainauth.Role(cfg.Auth.DefaultRole),
		Metrics:     deps.Metrics,
		Logger:      logger,
	}), nil
}

// buildAllowlistSource selects the allow-list backing store from configuration.
func buildAllowlistSource(cfg *config.AppConfig, db *sql.DB) (ports.AllowlistSource, error) {
	switch cfg.Allowlist.Source {
	case config.AllowlistSourceRemote:
		source, err := allowlist.NewRemoteSource(allowlist.RemoteSourceConfig{
			URL:          cfg.Allowlist.URL,
			UsersExpr:    cfg.Allowlist.UsersExpr,
			ScheduleExpr: cfg.Allowlist.ScheduleExpr,
			Timeout:      cfg.Allowlist.FetchTimeout,
		})
		if err != nil {
			return nil, err
		}
		return source, nil
	case config.AllowlistSourcePostgres:
		if db == nil {
			return nil, errors.New("postgres allow-list source requires a database connection")
		}
		source, err := allowlist.NewPostgresSource(db)
		if err != nil {
			return nil, err
		}
		return source, nil
	default:
		source, err := allowlist.NewFileSource(cfg.Allowlist.File)
		if err != nil {
			return nil, err
		}
		return source, nil
	}
}

// NewMetricsSink builds the StatsD client from configuration. A disabled
// configuration yields an inert client rather than a nil sink.
func NewMetricsSink(cfg *config.AppConfig, logger *slog.Logger) (*statsd.Client, error) {
	metricsCfg := cfg.Observability.Metrics
	client, err := statsd.NewClient(statsd.Config{
		Enabled: metricsCfg.IsEnabled(),
		Address: metricsCfg.StatsdAddress,
		Prefix:  "acceso",
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build statsd client: %w", err)
	}
	return client, nil
}
