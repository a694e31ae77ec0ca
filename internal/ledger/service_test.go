package ledger

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/ledger/ledgertest"
)

func setup(points int64) (*ledgertest.Repository, Service) {
	repo := ledgertest.NewRepository()
	repo.AddAccount(&domain.Account{ID: "acc-1", Username: "kirito", Points: points, Roles: []domain.Role{domain.RoleUser}})
	return repo, NewService(repo)
}

func TestAdjust_Grant(t *testing.T) {
	repo, svc := setup(100)

	entry, err := svc.Adjust(context.Background(), AdjustInput{AccountID: "acc-1", AuthorName: "admin", Amount: 50, Reason: " event "})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAdjusted, entry.Status)
	assert.Equal(t, domain.KindAdjustment, entry.Kind)
	assert.Equal(t, "event", entry.Reason)
	assert.Equal(t, int64(100), *entry.BalanceBefore)
	assert.Equal(t, int64(150), *entry.BalanceAfter)
	assert.Equal(t, int64(150), repo.Account("acc-1").Points)
	assert.Equal(t, 1, repo.Count())
}

func TestAdjust_RevokeCannotOverdraw(t *testing.T) {
	repo, svc := setup(30)

	_, err := svc.Adjust(context.Background(), AdjustInput{AccountID: "acc-1", AuthorName: "admin", Amount: -50})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(30), repo.Account("acc-1").Points)
	assert.Zero(t, repo.Count())

	entry, err := svc.Adjust(context.Background(), AdjustInput{AccountID: "acc-1", AuthorName: "admin", Amount: -30})
	require.NoError(t, err)
	assert.Equal(t, "-30", entry.Cost.String())
	assert.Zero(t, repo.Account("acc-1").Points)
}

func TestAdjust_Rejections(t *testing.T) {
	repo, svc := setup(30)
	ctx := context.Background()

	_, err := svc.Adjust(ctx, AdjustInput{AccountID: "acc-1", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Adjust(ctx, AdjustInput{AccountID: "ghost", Amount: 10})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	repo.FailInsert = domain.ErrDatabaseError
	_, err = svc.Adjust(ctx, AdjustInput{AccountID: "acc-1", Amount: 10})
	assert.ErrorIs(t, err, domain.ErrDatabaseError)
	assert.Equal(t, int64(30), repo.Account("acc-1").Points, "a failed insert rolls the credit back")
}

func TestAdjust_AmountOutOfRange(t *testing.T) {
	repo, svc := setup(10)
	ctx := context.Background()

	for _, amount := range []int64{math.MinInt64, math.MaxInt64, -MaxAdjustment - 1, MaxAdjustment + 1} {
		_, err := svc.Adjust(ctx, AdjustInput{AccountID: "acc-1", AuthorName: "admin", Amount: amount})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "amount %d", amount)
	}
	assert.Equal(t, int64(10), repo.Account("acc-1").Points)
	assert.Zero(t, repo.Count())

	entry, err := svc.Adjust(ctx, AdjustInput{AccountID: "acc-1", AuthorName: "admin", Amount: MaxAdjustment})
	require.NoError(t, err)
	assert.Equal(t, MaxAdjustment+10, *entry.BalanceAfter)
}

func TestAdjust_ConcurrentRevokes(t *testing.T) {
	repo, svc := setup(100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Adjust(context.Background(), AdjustInput{AccountID: "acc-1", Amount: -40}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, int64(20), repo.Account("acc-1").Points)
}

func TestClaim(t *testing.T) {
	repo, svc := setup(0)
	ctx := context.Background()
	repo.SeedTransaction(&domain.Transaction{ID: "tx-a", AccountID: "acc-1", Status: domain.StatusConfirmed})
	repo.SeedTransaction(&domain.Transaction{ID: "tx-b", AccountID: "acc-1", Status: domain.StatusConfirmed})
	repo.SeedTransaction(&domain.Transaction{ID: "tx-c", AccountID: "acc-1", Status: domain.StatusPending})

	tx, err := svc.Claim(ctx, "tx-a", domain.ClaimPrimary)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClaimed, tx.Status)

	tx, err = svc.Claim(ctx, "tx-b", domain.ClaimSecondary)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClaimedSecondary, tx.Status)

	_, err = svc.Claim(ctx, "tx-a", domain.ClaimSecondary)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "claimed entries are terminal")

	_, err = svc.Claim(ctx, "tx-c", domain.ClaimPrimary)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending entries cannot skip confirmation")

	_, err = svc.Claim(ctx, "tx-a", "tertiary")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Claim(ctx, "missing", domain.ClaimPrimary)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	claimable, err := svc.ListClaimable(ctx)
	require.NoError(t, err)
	assert.Empty(t, claimable)
}

func TestListPage(t *testing.T) {
	repo, svc := setup(0)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		repo.SeedTransaction(&domain.Transaction{AccountID: "acc-1", Status: domain.StatusConfirmed, Currency: domain.CurrencyPoints})
	}
	repo.SeedTransaction(&domain.Transaction{AccountID: "acc-2", Status: domain.StatusClaimed, Currency: domain.CurrencyRealMoney})

	page, err := svc.ListPage(ctx, domain.TransactionFilter{AccountID: "acc-1"}, domain.Page{Number: 3, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	page, err = svc.ListPage(ctx, domain.TransactionFilter{Currency: domain.CurrencyRealMoney}, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, domain.DefaultPageSize, page.Size)

	page, err = svc.ListPage(ctx, domain.TransactionFilter{AccountID: "nobody"}, domain.Page{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Zero(t, page.TotalPages)

	_, err = svc.ListPage(ctx, domain.TransactionFilter{Status: "refunded"}, domain.Page{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListForAccount(t *testing.T) {
	repo, svc := setup(0)
	repo.SeedTransaction(&domain.Transaction{AccountID: "acc-1", SessionID: "cs_1"})
	repo.SeedTransaction(&domain.Transaction{AccountID: "acc-2"})

	mine, err := svc.ListForAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	used, err := svc.ExistsSessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.True(t, used)
}
