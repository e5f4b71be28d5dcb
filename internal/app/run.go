package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/mfreund/ipam-console/internal/auth"
	appdb "github.com/mfreund/ipam-console/internal/db"
	"github.com/mfreund/ipam-console/internal/domain"
	apihttp "github.com/mfreund/ipam-console/internal/http"
)

type Config struct {
	Port         string
	DSN          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Auth auth.Config

	// BootstrapUser is created with BootstrapPassword on startup when
	// it does not exist yet. Local auth mode only.
	BootstrapUser     string
	BootstrapPassword string
}

func LoadConfig() Config {
	cfg := Config{
		DSN:          os.Getenv("DB_CONN"),
		Port:         os.Getenv("PORT"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		Auth: auth.Config{
			Enabled:  os.Getenv("AUTH_DISABLED") != "true",
			Mode:     os.Getenv("AUTH_MODE"),
			Secret:   os.Getenv("AUTH_SECRET"),
			Issuer:   os.Getenv("OIDC_ISSUER"),
			Audience: os.Getenv("OIDC_AUDIENCE"),
			JWKSURL:  os.Getenv("OIDC_JWKS_URL"),
		},
		BootstrapUser:     os.Getenv("BOOTSTRAP_USER"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_PASSWORD"),
	}

	if cfg.DSN == "" {
		log.Fatal("missing required environment variable: DB_CONN")
	}
	if cfg.Port == "" {
		cfg.Port = "4040"
	}
	if cfg.Auth.Mode == "" {
		cfg.Auth.Mode = auth.ModeLocal
	}
	if cfg.Auth.Enabled && cfg.Auth.Mode == auth.ModeLocal && cfg.Auth.Secret == "" {
		log.Fatal("missing required environment variable: AUTH_SECRET")
	}
	return cfg
}

// Run serves on cfg.Port until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

// Serve runs the API on an existing listener. Owns the listener's
// lifetime.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := appdb.Bootstrap(ctx, pool); err != nil {
		return err
	}

	subnets := appdb.NewSubnetRepository(pool)
	ips := appdb.NewIPRepository(pool)
	users := appdb.NewUserRepository(pool)

	var service domain.NetworkService = domain.NewNetworkService(subnets, ips)
	service = domain.NewLoggingNetworkService(logger, service)

	var authenticator auth.Authenticator
	var credentials auth.CredentialStore
	if cfg.Auth.Enabled {
		switch cfg.Auth.Mode {
		case auth.ModeOIDC:
			authenticator, err = auth.NewOIDCAuthenticator(ctx, cfg.Auth)
			if err != nil {
				return err
			}
		default:
			local, err := auth.NewLocalAuthenticator(users, cfg.Auth)
			if err != nil {
				return err
			}
			if cfg.BootstrapUser != "" {
				if err := local.EnsureUser(ctx, cfg.BootstrapUser, cfg.BootstrapPassword); err != nil {
					return err
				}
			}
			authenticator = local
			credentials = local
		}
	}

	api := apihttp.NewAPI(logger, pool, service, authenticator, credentials)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.InfoContext(ctx, "serving", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.ErrorContext(ctx, "serve", "err", err.Error())
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
