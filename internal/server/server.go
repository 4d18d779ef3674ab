package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/pilot-auth/internal/auth"
	"github.com/hongminglow/pilot-auth/internal/config"
	"github.com/hongminglow/pilot-auth/internal/http/handlers"
	"github.com/hongminglow/pilot-auth/internal/middleware"
	"github.com/hongminglow/pilot-auth/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// NewHandler wires routes and middleware into a single http.Handler.
func NewHandler(cfg config.Server, store storage.UserStore, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	requireAuth := middleware.Authenticate(tokens, store, logger)

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, tokens, logger).Register(mux, requireAuth)
	handlers.NewUserHandler().Register(mux, requireAuth)

	return middleware.CORS(cfg.CORSOrigins)(middleware.Logging(logger)(mux))
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Server, store storage.UserStore, logger *slog.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, store, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
