package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/ledger"
	"github.com/saofrance/shop-api/internal/stats"
)

type tokenTable map[string]*domain.Account

func (t tokenTable) Validate(_ context.Context, bearer string) (*domain.Account, error) {
	if acc, ok := t[bearer]; ok {
		return acc, nil
	}
	return nil, domain.ErrUnauthorized
}

type okPool struct{}

func (okPool) Ping(context.Context) error { return nil }
func (okPool) Close()                     {}

type listingCatalog struct {
	catalog.Service
	includeInactive []bool
}

func (c *listingCatalog) List(_ context.Context, includeInactive bool) ([]domain.CatalogItem, error) {
	c.includeInactive = append(c.includeInactive, includeInactive)
	return []domain.CatalogItem{}, nil
}

type emptyLedger struct {
	ledger.Service
}

func (emptyLedger) ListClaimable(context.Context) ([]domain.ClaimableTransaction, error) {
	return nil, nil
}

func (emptyLedger) ListForAccount(context.Context, string) ([]domain.Transaction, error) {
	return nil, nil
}

type zeroStats struct {
	stats.Service
}

func (zeroStats) AdminStats(context.Context) (*domain.AdminStats, error) {
	return &domain.AdminStats{}, nil
}

func newTestRouter(cat *listingCatalog) http.Handler {
	tokens := tokenTable{
		"user":  {ID: "u", Roles: []domain.Role{domain.RoleUser}},
		"staff": {ID: "s", Roles: []domain.Role{domain.RoleUser, domain.RoleStaff}},
		"admin": {ID: "a", Roles: []domain.Role{domain.RoleAdmin}},
	}
	return NewRouter(Options{
		GameServerAPIKey:   "game-key",
		LoginRatePerMinute: 100,
	}, okPool{}, Services{
		Tokens:  tokens,
		Catalog: cat,
		Ledger:  emptyLedger{},
		Stats:   zeroStats{},
	})
}

func TestRouter_AccessControl(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		apiKey     string
		wantStatus int
	}{
		{"health is public", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"readiness is public", http.MethodGet, "/readyz", "", "", http.StatusOK},
		{"catalog listing is public", http.MethodGet, "/api/v1/shop/products", "", "", http.StatusOK},
		{"profile needs a token", http.MethodGet, "/api/v1/users/profile", "", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/transactions", "nope", "", http.StatusUnauthorized},
		{"own transactions", http.MethodGet, "/api/v1/transactions", "user", "", http.StatusOK},
		{"catalog create needs a manager", http.MethodPost, "/api/v1/shop/products", "user", "", http.StatusForbidden},
		{"account listing needs a manager", http.MethodGet, "/api/v1/users", "staff", "", http.StatusForbidden},
		{"role grant is admin only", http.MethodPost, "/api/v1/admin/accounts/u/roles", "staff", "", http.StatusForbidden},
		{"ledger page needs a manager", http.MethodGet, "/api/v1/transactions/page", "user", "", http.StatusForbidden},
		{"staff sees statistics", http.MethodGet, "/api/v1/statistics/admin", "staff", "", http.StatusOK},
		{"users do not see statistics", http.MethodGet, "/api/v1/statistics/admin", "user", "", http.StatusForbidden},
		{"claims need the game key", http.MethodGet, "/api/v1/shop/claims", "admin", "", http.StatusUnauthorized},
		{"claims with the game key", http.MethodGet, "/api/v1/shop/claims", "", "game-key", http.StatusOK},
	}

	router := newTestRouter(&listingCatalog{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.RemoteAddr = "203.0.113.10:1234"
			if tt.token != "" {
				req.Header.Set(HeaderAuthorization, "Bearer "+tt.token)
			}
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_InactiveListingFollowsOptionalAuth(t *testing.T) {
	cat := &listingCatalog{}
	router := newTestRouter(cat)

	for _, token := range []string{"", "user", "admin"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/products?include_inactive=true", nil)
		if token != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []bool{false, false, true}, cat.includeInactive)
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	router := newTestRouter(&listingCatalog{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}
