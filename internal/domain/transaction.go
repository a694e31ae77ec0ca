package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a ledger entry
type TransactionStatus string

const (
	StatusPending          TransactionStatus = "pending"
	StatusConfirmed        TransactionStatus = "confirmed"
	StatusClaimed          TransactionStatus = "claimed"
	StatusClaimedSecondary TransactionStatus = "claimed_secondary"
	StatusAdjusted         TransactionStatus = "adjusted"
)

// transitions lists the allowed next states for every status.
// claimed, claimed_secondary and adjusted are terminal.
var transitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {StatusClaimed, StatusClaimedSecondary},
}

// IsValid reports whether s is a known status
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusClaimed, StatusClaimedSecondary, StatusAdjusted:
		return true
	}
	return false
}

// CanTransition reports whether a transaction may move from one status to another
func CanTransition(from, to TransactionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition when from -> to is not allowed
func ValidateTransition(from, to TransactionStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ClaimTarget names which game server fulfils a reward
type ClaimTarget string

const (
	ClaimPrimary   ClaimTarget = "primary"
	ClaimSecondary ClaimTarget = "secondary"
)

// Status maps a claim target to the status it moves a transaction into
func (t ClaimTarget) Status() (TransactionStatus, error) {
	switch t {
	case ClaimPrimary, "":
		return StatusClaimed, nil
	case ClaimSecondary:
		return StatusClaimedSecondary, nil
	}
	return "", fmt.Errorf("%w: unknown claim target %q", ErrInvalidInput, t)
}

// TransactionKind separates purchases from administrative corrections
type TransactionKind string

const (
	KindPurchase   TransactionKind = "purchase"
	KindAdjustment TransactionKind = "adjustment"
)

// Payment modes recorded on transactions
const (
	ModePoints     = "points"
	ModePayment    = "payment"
	ModeAdjustment = "adjustment"
)

// Transaction is an immutable-ish ledger entry; only Status moves after creation
type Transaction struct {
	ID                 string            `json:"id"`
	AccountID          string            `json:"account_id"`
	AuthorName         string            `json:"author_name"`
	Kind               TransactionKind   `json:"kind"`
	Status             TransactionStatus `json:"status"`
	Currency           CurrencyKind      `json:"currency"`
	Cost               decimal.Decimal   `json:"cost"`
	ProductName        string            `json:"product_name"`
	CatalogItemID      string            `json:"catalog_item_id,omitempty"`
	Snapshot           *ItemSnapshot     `json:"snapshot,omitempty"`
	Mode               string            `json:"mode"`
	SessionID          string            `json:"session_id,omitempty"`
	ProcessorProductID string            `json:"processor_product_id,omitempty"`
	BalanceBefore      *int64            `json:"balance_before,omitempty"`
	BalanceAfter       *int64            `json:"balance_after,omitempty"`
	Reason             string            `json:"reason,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ClaimableTransaction is a confirmed purchase waiting for in-game delivery
type ClaimableTransaction struct {
	Transaction
	GameName string `json:"game_name"`
	GameUUID string `json:"game_uuid"`
}

// TransactionFilter narrows paged ledger listings
type TransactionFilter struct {
	AccountID string
	Status    TransactionStatus
	Currency  CurrencyKind
	Kind      TransactionKind
}

// Page bounds a listing
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPageNumber   = 1_000_000
)

// Normalize clamps the page into the accepted range
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of rows to skip
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TransactionPage is one page of a filtered listing
type TransactionPage struct {
	Items      []Transaction `json:"items"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}
