// Package server boots the backoffice: config, log sink, session store,
// upstream clients, router, and the HTTP listener itself.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orderlingo/backoffice/config"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/internal/session"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/logger"
	"github.com/orderlingo/backoffice/pkg/router"
)

// Build wires every dependency and returns the assembled router.
// Shared by Start and the route:list command.
func Build() (*router.Router, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	store := newStore()
	opts := session.Options{
		CookieName: config.SessionCookie(),
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.AppEnv() == "production",
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}

	api := upstream.NewClient(config.APIBaseURL())
	gateway := identity.NewGateway(
		config.KeycloakURL(),
		config.KeycloakRealm(),
		config.KeycloakClientID(),
		config.KeycloakClientSecret(),
		api,
	)

	return NewRouter(api, gateway, store, opts), nil
}

// newStore prefers Redis and falls back to the in-process store so a dev
// machine without Redis still boots. Sessions then die with the process.
func newStore() session.Store {
	redisStore, err := session.NewRedisStore(config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("server: redis unavailable, using in-memory sessions", "error", err)
		return session.NewMemoryStore()
	}
	logger.Info("server: redis session store connected", "addr", config.RedisAddr())
	return redisStore
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 10 seconds.
func Start() error {
	r, err := Build()
	if err != nil {
		return err
	}

	flush := logger.Setup()
	defer flush()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
