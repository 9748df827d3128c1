package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HammerMeetNail/tripboard/internal/config"
	"github.com/HammerMeetNail/tripboard/internal/database"
	"github.com/HammerMeetNail/tripboard/internal/handlers"
	"github.com/HammerMeetNail/tripboard/internal/logging"
	"github.com/HammerMeetNail/tripboard/internal/middleware"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{"env": cfg.Server.Environment})
	}

	logger.Info("Starting tripboard server...", map[string]interface{}{"trip": cfg.Trip.Name})

	ctx := context.Background()

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...", map[string]interface{}{"path": cfg.Database.MigrationsPath})
	migrator, err := database.NewMigrator(cfg.Database.DSN(), cfg.Database.MigrationsPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{"addr": cfg.Redis.Addr()})
	redisDB, err := database.NewRedisDB(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	passwordHash, err := resolveTripPasswordHash(cfg.Auth, logger)
	if err != nil {
		return err
	}

	emailSender, err := services.NewEmailSender(cfg.Email.Provider, cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	if err != nil {
		logger.Warn("Email invites disabled", map[string]interface{}{"error": err.Error()})
		emailSender = nil
	}

	kv := services.NewRedisKV(redisDB.Client)

	store := services.NewTripStore(kv, cfg.Trip.Key, services.TripSeed{
		Name:      cfg.Trip.Name,
		StartDate: cfg.Trip.StartDate,
		EndDate:   cfg.Trip.EndDate,
		Locale:    cfg.Trip.Locale,
	})
	memberService := services.NewMemberService(db.Pool)
	inviteTokens := services.NewInviteTokens(cfg.Auth.InviteSecret, cfg.Auth.InviteTTL)
	authService := services.NewAuthService(memberService, kv, inviteTokens, passwordHash, cfg.Auth.SessionTTL)

	srv := &server{
		health:   handlers.NewHealthHandler(db, redisDB),
		auth:     handlers.NewAuthHandler(authService, cfg.Server.Secure, cfg.Auth.SessionTTL),
		trip:     handlers.NewTripHandler(services.NewTripService(store)),
		activity: handlers.NewActivityHandler(services.NewActivityService(store)),
		reaction: handlers.NewReactionHandler(services.NewReactionService(store)),
		comment:  handlers.NewCommentHandler(services.NewCommentService(store)),
		invite:   handlers.NewInviteHandler(services.NewInviteService(inviteTokens, emailSender, cfg.Trip.Name), cfg.Server.BaseURL),

		authMiddleware: middleware.NewAuthMiddleware(authService),
		requestLogger:  middleware.NewRequestLogger(logger),
		joinLimiter: middleware.NewRateLimiter(redisDB.Client, middleware.RateLimitConfig{
			Limit:    cfg.Auth.JoinRateLimit,
			Window:   15 * time.Minute,
			Prefix:   "ratelimit:join:",
			FailOpen: true,
			Message:  "Too many join attempts, try again later",
		}),
		inviteEmailLimiter: middleware.NewRateLimiter(redisDB.Client, middleware.RateLimitConfig{
			Limit:   10,
			Window:  time.Hour,
			Prefix:  "ratelimit:invite-email:",
			Key:     memberOrIP,
			Message: "Too many invites sent, try again later",
		}),
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		httpServer.SetKeepAlivesEnabled(false)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{"addr": addr})
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

func memberOrIP(r *http.Request) string {
	if member := handlers.GetUserFromContext(r.Context()); member != nil {
		return member.ID.String()
	}
	return middleware.GetClientIP(r)
}

// resolveTripPasswordHash prefers a configured bcrypt hash and otherwise
// hashes the plain password once at startup.
func resolveTripPasswordHash(cfg config.AuthConfig, logger *logging.Logger) (string, error) {
	if cfg.TripPasswordHash != "" {
		return cfg.TripPasswordHash, nil
	}
	if cfg.TripPassword == "" {
		logger.Warn("No trip password configured; only invite links can join")
		return "", nil
	}
	hash, err := services.HashTripPassword(cfg.TripPassword)
	if err != nil {
		return "", err
	}
	return hash, nil
}
