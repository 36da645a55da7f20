package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/owakeel/golf-music-backend/internal/cache"
	"github.com/owakeel/golf-music-backend/internal/config"
	"github.com/owakeel/golf-music-backend/internal/database"
	"github.com/owakeel/golf-music-backend/internal/email"
	"github.com/owakeel/golf-music-backend/internal/handler"
	"github.com/owakeel/golf-music-backend/internal/middleware"
	"github.com/owakeel/golf-music-backend/internal/repository"
	"github.com/owakeel/golf-music-backend/internal/service"
	"github.com/owakeel/golf-music-backend/pkg/token"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if !cfg.IsProduction() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
		handler.SetExposeErrorDetail(true)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Database
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.DefineSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to define schema")
	}
	logger.Info().Msg("connected to database")

	// Cache (optional)
	var listCache *cache.Cache
	if cfg.Redis.Addr != "" {
		listCache, err = cache.New(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer listCache.Close()
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("list cache enabled")
	}

	// Email
	var mailer email.Sender
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		mailer = email.NewLogSender(logger)
	}

	// Tokens
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)

	// Repositories
	castRepo := repository.NewCastRepository(db)
	merchRepo := repository.NewMerchRepository(db)
	waveRepo := repository.NewWaveRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	castService := service.NewCastService(castRepo, listCache)
	merchService := service.NewMerchService(merchRepo, listCache)
	waveService := service.NewWaveService(waveRepo, listCache)
	authService := service.NewAuthService(userRepo, tokens, mailer)

	// Handlers
	castHandler := handler.NewCastHandler(castService, logger)
	merchHandler := handler.NewMerchHandler(merchService, logger)
	waveHandler := handler.NewWaveHandler(waveService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	healthHandler := handler.NewHealthHandler(db)

	// Routes
	mux := http.NewServeMux()

	authOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Auth(tokens))
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Auth(tokens), middleware.AdminOnly())
	}

	mux.HandleFunc("GET /health", healthHandler.Check)

	mux.HandleFunc("GET /casts", castHandler.List)
	mux.Handle("POST /casts", adminOnly(castHandler.Create))
	mux.Handle("PUT /casts/{id}", adminOnly(castHandler.Update))
	mux.Handle("DELETE /casts/{id}", adminOnly(castHandler.Delete))

	mux.HandleFunc("GET /merch", merchHandler.List)
	mux.Handle("POST /merch", adminOnly(merchHandler.Create))
	mux.Handle("PUT /merch/{id}", adminOnly(merchHandler.Update))
	mux.Handle("DELETE /merch/{id}", adminOnly(merchHandler.Delete))

	mux.HandleFunc("GET /waves", waveHandler.List)
	mux.Handle("POST /waves", adminOnly(waveHandler.Create))
	mux.Handle("PUT /waves/{id}", adminOnly(waveHandler.Update))
	mux.Handle("DELETE /waves/{id}", adminOnly(waveHandler.Delete))

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("GET /auth/me", authOnly(authHandler.Me))

	root := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
