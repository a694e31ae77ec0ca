package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/database/postgres"
	"github.com/saofrance/shop-api/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Accounts   repository.Account
	Sessions   repository.Session
	Catalog    repository.Catalog
	Ledger     repository.Ledger
	Identities repository.Identity
	Stats      repository.Stats
}

// InitializeRepositories creates the PostgreSQL repositories over one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Accounts:   postgres.NewAccountRepository(dbPool),
		Sessions:   postgres.NewSessionRepository(dbPool),
		Catalog:    postgres.NewCatalogRepository(dbPool),
		Ledger:     postgres.NewLedgerRepository(dbPool),
		Identities: postgres.NewIdentityRepository(dbPool),
		Stats:      postgres.NewStatsRepository(dbPool),
	}
}
