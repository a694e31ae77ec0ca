package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the goose migration files shipped with the binary
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// the directory is embedded at compile time
		panic(err)
	}
	return sub
}

// Migrate applies every pending migration to the database behind pool
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}

	if len(results) == 0 {
		slog.Default().Info(LogMsgSchemaUpToDate)
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
