// Package server sets up the HTTP server, router, and dependency wiring.
//
// This is the composition root: the Mongo handle, the auth utilities, the
// services, the GraphQL schema, and the handlers are all assembled here,
// in one place, rather than scattered across the codebase. The server owns
// the database handle — opened in New, closed during graceful shutdown —
// so there is no process-wide connection singleton.
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

	"github.com/sakif/employee-graphql/internal/auth"
	"github.com/sakif/employee-graphql/internal/graph"
	"github.com/sakif/employee-graphql/internal/handler"
	"github.com/sakif/employee-graphql/internal/middleware"
	"github.com/sakif/employee-graphql/internal/repository/mongodb"
	"github.com/sakif/employee-graphql/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port       int
	MongoURI   string
	DBName     string
	Secret     string // token signing secret; required
	BcryptCost int    // 0 means auth.DefaultCost
}

// Server owns the router and the database handle.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *mongodb.DB
}

// New connects to the database and wires the full dependency chain:
//
//	mongodb.DB → AuthService/EmployeeService → graph schema → GraphQLHandler
//	           ↘ TokenService / PasswordService
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := mongodb.New(ctx, cfg.MongoURI, cfg.DBName)
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
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.Secret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	employeeService := service.NewEmployeeService(s.db, s.logger)

	schema, err := graph.NewSchema(authService, employeeService)
	if err != nil {
		return fmt.Errorf("building graphql schema: %w", err)
	}

	graphqlHandler := handler.NewGraphQLHandler(schema, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	// Global middleware — order matters: request id / real ip first,
	// panic recovery before anything that can blow up, then logging.
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(auth.OptionalAuth(tokens))

	s.router.Post("/graphql", graphqlHandler.HandleQuery)
	s.router.Get("/healthz", healthHandler.HandleHealthz)

	return nil
}

// Start starts the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Disconnect the Mongo client
func (s *Server) Start() error {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("closing database", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/graphql", s.config.Port)),
			slog.String("database", s.config.DBName),
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
