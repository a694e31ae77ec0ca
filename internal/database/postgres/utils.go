package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// parseID parses an entity id. A malformed id can never match a row, so callers
// translate the error into their not-found sentinel.
func parseID(id string) (uuid.UUID, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}

// isPgError reports whether err carries the given PostgreSQL error code
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return isPgError(err, PgErrorCodeUniqueViolation)
}

// parseDecimal converts a NUMERIC selected as text
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", ErrMsgFailedToParseAmount, s, err)
	}
	return d, nil
}

// nullString maps the empty string to SQL NULL
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
