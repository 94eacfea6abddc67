package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/invoice-dashboard/config"
	"github.com/target/invoice-dashboard/internal/adapters/authroles"
	"github.com/target/invoice-dashboard/internal/adapters/devauth"
	"github.com/target/invoice-dashboard/internal/adapters/memory"
	"github.com/target/invoice-dashboard/internal/adapters/oidc"
	redisadapter "github.com/target/invoice-dashboard/internal/adapters/redis"
	"github.com/target/invoice-dashboard/internal/ports"
	"github.com/target/invoice-dashboard/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth          config.AuthConfig
	RedisClient   redis.UniversalClient
	SessionPrefix string
	Logger        *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Sessions live in Redis when a client is given and in process memory otherwise.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessions := buildSessionStore(cfg, logger)
	roleMapper := authroles.StaticRoleMapper{
		AdminGroup: cfg.Auth.AdminGroup,
		UserGroup:  cfg.Auth.UserGroup,
	}

	var (
		provider ports.AuthProvider
		err      error
	)
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		provider, err = buildDevAuthProvider(cfg.Auth)
	case config.AuthModeOAuth:
		provider, err = buildOAuthProvider(ctx, cfg.Auth)
	default:
		err = fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("auth service configured", "mode", cfg.Auth.Mode, "sessions", sessionBackend(cfg))
	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Roles:    roleMapper,
	}), nil
}

//nolint:ireturn // the session backend is picked at runtime.
func buildSessionStore(cfg AuthConfig, logger *slog.Logger) ports.SessionStore {
	if cfg.RedisClient == nil {
		logger.Warn("redis not configured; sessions are kept in memory and lost on restart")
		return memory.NewSessionStore()
	}
	return redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.SessionPrefix)
}

func sessionBackend(cfg AuthConfig) string {
	if cfg.RedisClient == nil {
		return "memory"
	}
	return "redis"
}

func buildDevAuthProvider(auth config.AuthConfig) (*devauth.Provider, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:          auth.DevAuth.UserID,
		Name:            auth.DevAuth.Name,
		Email:           auth.DevAuth.Email,
		Groups:          auth.DevAuth.Groups,
		SessionDuration: auth.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}
	return prov, nil
}

func buildOAuthProvider(ctx context.Context, auth config.AuthConfig) (*oidc.Provider, error) {
	oauth := auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		var missing []error
		if oauth.DiscoveryURL == "" {
			missing = append(missing, errors.New("OAUTH_DISCOVERY_URL is empty"))
		}
		if oauth.ClientID == "" {
			missing = append(missing, errors.New("OAUTH_CLIENT_ID is empty"))
		}
		if oauth.ClientSecret == "" {
			missing = append(missing, errors.New("OAUTH_CLIENT_SECRET is empty"))
		}
		return nil, fmt.Errorf("oauth auth mode misconfigured: %w", errors.Join(missing...))
	}

	prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create OIDC provider: %w", err)
	}
	return prov, nil
}
