package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saofrance/shop-api/internal/database"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = startTestDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// startTestDatabase boots a throwaway PostgreSQL and applies the embedded migrations.
// It returns a nil pool when Docker is unavailable so tests can skip.
func startTestDatabase(ctx context.Context) (pool *pgxpool.Pool, terminate func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic starting postgres (likely Docker issue): %v\n", r)
			pool = nil
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate = func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}

	pool, err = database.NewPool(ctx, connStr, database.PoolOptions{MaxConns: 10})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect to test database: %v\n", err)
		return nil, terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to apply migrations: %v\n", err)
		pool.Close()
		return nil, terminate
	}
	return pool, terminate
}

// setupTestDB returns the shared pool with every table emptied
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	_, err := testPool.Exec(context.Background(), `
		TRUNCATE exchange_tokens, linked_identities, transactions, catalog_items, account_sessions, accounts`)
	require.NoError(t, err)
	return testPool
}

// createTestAccount inserts an account holding points
func createTestAccount(t *testing.T, pool *pgxpool.Pool, username string, points int64) *domain.Account {
	t.Helper()
	account := &domain.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Roles:        []domain.Role{domain.RoleUser},
		Points:       points,
	}
	err := NewAccountRepository(pool).CreateAccount(context.Background(), account, repository.AccountKeys{
		Username: username,
		Email:    account.Email,
	})
	require.NoError(t, err)
	return account
}

// createTestItem inserts a points-priced rank item
func createTestItem(t *testing.T, pool *pgxpool.Pool, name string, price int64) *domain.CatalogItem {
	t.Helper()
	item := &domain.CatalogItem{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Currency: domain.CurrencyPoints,
		Category: domain.CategoryRank,
		Reward:   domain.Reward{Role: domain.RoleStaff},
		Active:   true,
	}
	require.NoError(t, NewCatalogRepository(pool).CreateItem(context.Background(), item))
	return item
}

// insertTestTransaction records a confirmed purchase of item by account
func insertTestTransaction(t *testing.T, pool *pgxpool.Pool, account *domain.Account, item *domain.CatalogItem, sessionID string) *domain.Transaction {
	t.Helper()
	ctx := context.Background()

	tx, err := NewLedgerRepository(pool).BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	entry := &domain.Transaction{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		AuthorName:    account.Username,
		Kind:          domain.KindPurchase,
		Status:        domain.StatusConfirmed,
		Currency:      item.Currency,
		Cost:          item.Price,
		ProductName:   item.Name,
		CatalogItemID: item.ID,
		Snapshot:      item.Snapshot(),
		Mode:          domain.ModePoints,
		SessionID:     sessionID,
	}
	require.NoError(t, tx.InsertTransaction(ctx, entry))
	require.NoError(t, tx.Commit(ctx))
	return entry
}
