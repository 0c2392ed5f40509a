package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"
	"github.com/yukikurage/employee-management-api/internal/config"
	"github.com/yukikurage/employee-management-api/internal/constants"
	"github.com/yukikurage/employee-management-api/internal/database"
	"github.com/yukikurage/employee-management-api/internal/handlers"
	"github.com/yukikurage/employee-management-api/internal/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	gin.SetMode(cfg.GinMode)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		return err
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		slog.Error("failed to create session store", "store", cfg.SessionStore, "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter, closeLimiter, err := newAuthLimiter(ctx, cfg)
	if err != nil {
		slog.Error("failed to create rate limiter", "store", cfg.RateLimitStore, "error", err)
		return err
	}
	defer closeLimiter()

	router := handlers.NewRouter(handlers.RouterOptions{
		DB:                     db,
		SessionStore:           store,
		Logger:                 slog.Default(),
		AuthLimiter:            limiter,
		CORSOrigins:            cfg.CORSAllowedOrigins,
		VerifyAssignee:         cfg.TasksVerifyAssignee,
		RejectOAuthPlaceholder: cfg.AuthRejectOAuthPlaceholder,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.HTTPAddr, "mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("server stopped", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return err
	}

	slog.Info("server shut down gracefully")
	return nil
}

// newSessionStore builds the store backing the session cookie.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	case "redis":
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			cfg.RedisAddr(),
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(), // HTTPS only in production
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// newAuthLimiter returns the limiter for the sign-in routes, or nil when
// limiting is disabled. The returned func releases its resources.
func newAuthLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, func(), error) {
	if cfg.RateLimitPerMinute == 0 {
		return nil, func() {}, nil
	}

	if cfg.RateLimitStore == "redis" {
		client, err := ratelimit.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		limiter := ratelimit.NewRedisLimiter(client, "ratelimit:auth:", cfg.RateLimitPerMinute, time.Minute)
		return limiter, func() { closeRedis(client) }, nil
	}

	limiter := ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.RunSweeper(ctx)
	return limiter, func() {}, nil
}

func closeRedis(client rueidis.Client) {
	client.Close()
	slog.Info("redis client closed")
}
