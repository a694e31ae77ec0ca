package handler

import (
	"net/http"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/ledger"
)

const (
	QueryStatus    = "status"
	QueryCurrency  = "currency"
	QueryKind      = "kind"
	QueryAccountID = "account_id"
	QueryPage      = "page"
	QuerySize      = "size"
)

// HandleListMyTransactions lists the caller's transactions, newest first
// @Summary Own transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Transaction
// @Router /api/v1/transactions [get]
func HandleListMyTransactions(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		entries, err := svc.ListForAccount(r.Context(), acc.ID)
		if err != nil {
			respondServiceError(w, r, "list own transactions", err)
			return
		}
		respondTransactions(w, entries)
	}
}

// HandleListAllTransactions lists every transaction
// @Summary All transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Transaction
// @Router /api/v1/transactions/all [get]
func HandleListAllTransactions(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListAll(r.Context())
		if err != nil {
			respondServiceError(w, r, "list transactions", err)
			return
		}
		respondTransactions(w, entries)
	}
}

// HandleListTransactionPage returns one filtered page of the ledger
// @Summary Paged transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param currency query string false "points or real_money"
// @Param kind query string false "purchase or adjustment"
// @Param account_id query string false "Account filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} domain.TransactionPage
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/transactions/page [get]
func HandleListTransactionPage(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, ok := getIntQueryParam(w, r, QueryPage, 1)
		if !ok {
			return
		}
		size, ok := getIntQueryParam(w, r, QuerySize, domain.DefaultPageSize)
		if !ok {
			return
		}
		filter := domain.TransactionFilter{
			AccountID: r.URL.Query().Get(QueryAccountID),
			Status:    domain.TransactionStatus(r.URL.Query().Get(QueryStatus)),
			Currency:  domain.CurrencyKind(r.URL.Query().Get(QueryCurrency)),
			Kind:      domain.TransactionKind(r.URL.Query().Get(QueryKind)),
		}

		page, err := svc.ListPage(r.Context(), filter, domain.Page{Number: number, Size: size})
		if err != nil {
			respondServiceError(w, r, "list transaction page", err)
			return
		}
		respondJSON(w, http.StatusOK, page)
	}
}

// HandleGetTransaction returns one transaction
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/transactions/{id} [get]
func HandleGetTransaction(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		entry, err := svc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "get transaction", err)
			return
		}
		respondJSON(w, http.StatusOK, entry)
	}
}

func respondTransactions(w http.ResponseWriter, entries []domain.Transaction) {
	if entries == nil {
		entries = []domain.Transaction{}
	}
	respondJSON(w, http.StatusOK, entries)
}
