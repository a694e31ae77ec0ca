package main

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/saofrance/shop-api/docs"
	"github.com/saofrance/shop-api/internal/bootstrap"
	"github.com/saofrance/shop-api/internal/config"
	"github.com/saofrance/shop-api/internal/database"
)

// @title SAO France Shop API
// @version 1.0
// @description Accounts, shop catalog, purchases and point ledger of the SAO France community.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bootstrap.SetupLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(ctx, dbPool); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	app, err := bootstrap.Build(cfg, dbPool)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	go func() {
		if err := app.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, app)
}
