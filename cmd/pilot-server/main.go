package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/pilot-auth/internal/config"
	"github.com/hongminglow/pilot-auth/internal/logging"
	"github.com/hongminglow/pilot-auth/internal/server"
	"github.com/hongminglow/pilot-auth/internal/storage"
	"github.com/hongminglow/pilot-auth/internal/storage/memory"
	"github.com/hongminglow/pilot-auth/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.NewFromString(os.Stderr, cfg.LogLevel)
	if envErr != nil {
		logger.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	var store storage.UserStore
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; users are kept in memory")
		store = memory.New()
	} else {
		pg, err := postgres.NewUserStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("init database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
	}

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info("pilot auth server listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}
