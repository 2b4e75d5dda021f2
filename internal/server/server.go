// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the composition root — every dependency in the app is
// wired together here, in one place:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler layer
// ever touches HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/gamevault/internal/ai"
	"github.com/sakif/gamevault/internal/auth"
	"github.com/sakif/gamevault/internal/catalog"
	"github.com/sakif/gamevault/internal/config"
	"github.com/sakif/gamevault/internal/handler"
	"github.com/sakif/gamevault/internal/middleware"
	sqliteRepo "github.com/sakif/gamevault/internal/repository/sqlite"
	"github.com/sakif/gamevault/internal/service"
)

// Server owns the router, the database connection, and the optional
// Gemini client. Both resources are closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	gemini *ai.GeminiClient // nil when no API key is configured
}

// New assembles the full dependency chain and registers every route.
//
// OPTIONAL INTEGRATIONS:
// The Google OAuth provider and the Gemini client are only constructed
// when their credentials are configured. The server runs without them;
// the affected endpoints then fail with a clear error (or, for the
// server-side OAuth routes, are not registered at all).
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes wires middleware, services, handlers and the route table.
//
// MIDDLEWARE ORDER MATTERS:
// RequestID and RealIP must run before the logger so log lines carry the
// right request metadata; Recoverer runs early so a panic anywhere below
// becomes a 500 instead of a crash.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Telemetry)

	// === Auth plumbing ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var google *auth.GoogleProvider
	if s.config.GoogleClientID != "" && s.config.GoogleClientSecret != "" {
		google = auth.NewGoogleProvider(
			s.config.GoogleClientID,
			s.config.GoogleClientSecret,
			s.config.GoogleCallbackURL,
		)
	} else {
		s.logger.Warn("Google OAuth credentials not set — server-side OAuth routes disabled")
	}

	// === Outbound integrations ===
	var completer service.Completer
	if s.config.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), s.config.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("creating gemini client: %w", err)
		}
		s.gemini = gemini
		completer = gemini
	} else {
		s.logger.Warn("GEMINI_API_KEY not set — recommendation endpoint disabled")
	}

	// === Services ===
	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	gameService := service.NewGameService(s.db.Games(), s.db.Favorites(), catalog.NewClient(), s.logger)
	favoriteService := service.NewFavoriteService(s.db.Favorites(), s.db.Games(), s.logger)
	aiService := service.NewAIService(s.db.AIRequests(), completer, s.logger)

	// === Handlers ===
	authHandler := handler.NewAuthHandler(authService, google, s.logger)
	gameHandler := handler.NewGameHandler(gameService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	aiHandler := handler.NewAIHandler(aiService)

	// === Public routes ===
	s.router.Post("/auth/register", authHandler.HandleRegister)
	s.router.Post("/auth/login", authHandler.HandleLogin)
	s.router.Post("/auth/google", authHandler.HandleGoogleLogin)
	if google != nil {
		s.router.Get("/auth/google/login", authHandler.HandleGoogleRedirect)
		s.router.Get("/auth/google/callback", authHandler.HandleGoogleCallback)
	}

	s.router.Get("/games", gameHandler.HandleList)
	s.router.Get("/games/search", gameHandler.HandleSearch)
	s.router.Get("/games/{id}", gameHandler.HandleDetail)

	// === Protected routes ===
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/auth/profile", authHandler.HandleProfile)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Post("/games/refresh-cache", gameHandler.HandleRefreshCache)
		r.Delete("/games/clear-cache", gameHandler.HandleClearCache)

		r.Get("/favorites", favoriteHandler.HandleList)
		r.Post("/favorites/{gameId}", favoriteHandler.HandleAdd)
		r.Delete("/favorites/{gameId}", favoriteHandler.HandleRemove)

		r.Post("/ai/recommend", aiHandler.HandleRecommend)
		r.Get("/ai/history", aiHandler.HandleHistory)
		r.Delete("/ai/history/{id}", aiHandler.HandleDelete)
	})

	// === Operational routes ===
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return nil
}

// Start runs the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections
//  2. Wait up to 30s for in-flight requests to finish
//  3. Close the Gemini client and the database (flushes the WAL)
func (s *Server) Start() error {
	defer s.db.Close()
	if s.gemini != nil {
		defer s.gemini.Close()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
