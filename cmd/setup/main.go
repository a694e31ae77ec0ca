package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/saofrance/shop-api/internal/config"
	"github.com/saofrance/shop-api/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	// 1. Connect to the default 'postgres' database to create the target one
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	// 2. Create the database if it does not exist yet
	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		conn.Close(ctx)
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", cfg.DBName)
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
			conn.Close(ctx)
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
	}
	conn.Close(ctx)

	// 3. Apply the embedded migrations
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer pool.Close()

	fmt.Println("Running migrations...")
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	fmt.Println("Migrations completed successfully.")
}
