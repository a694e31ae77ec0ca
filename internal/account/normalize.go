package account

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// FoldKey returns the case-folded form used to enforce uniqueness,
// so that "Kirito" and "KIRITO" cannot both register.
func FoldKey(s string) string {
	// a Caser keeps state and is not safe for concurrent use
	return cases.Fold().String(strings.TrimSpace(s))
}

// NormalizeEmail trims an address; the stored form keeps the user's casing
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func keysFor(a *domain.Account) repository.AccountKeys {
	return repository.AccountKeys{
		Username: FoldKey(a.Username),
		Email:    FoldKey(a.Email),
	}
}
