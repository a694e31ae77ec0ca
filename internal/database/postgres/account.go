package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

const accountColumns = `
	a.account_id::text, a.username, a.first_name, a.last_name, a.email, a.password_hash,
	a.phone_number, a.birthday, a.profile_picture, a.bio, a.roles, a.points,
	a.accept_emails, a.created_at, a.updated_at`

// AccountRepository implements repository.Account for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ repository.Account = (*AccountRepository)(nil)

// CreateAccount inserts a new account and fills its id and timestamps
func (r *AccountRepository) CreateAccount(ctx context.Context, account *domain.Account, keys repository.AccountKeys) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	accountID, ok := parseID(account.ID)
	if !ok {
		return fmt.Errorf("%w: malformed account id", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO accounts (
			account_id, username, username_key, first_name, last_name, email, email_key,
			password_hash, phone_number, birthday, profile_picture, bio, roles, points, accept_emails
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		accountID,
		account.Username,
		keys.Username,
		account.FirstName,
		account.LastName,
		account.Email,
		keys.Email,
		account.PasswordHash,
		account.PhoneNumber,
		account.Birthday,
		account.ProfilePicture,
		account.Bio,
		rolesToStrings(account.Roles),
		account.Points,
		account.AcceptEmails,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertAccount, err)
	}
	return nil
}

// GetAccountByID returns domain.ErrAccountNotFound when no account has that id
func (r *AccountRepository) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	accountID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return r.getAccount(ctx, `a.account_id = $1`, accountID)
}

// GetAccountByUsername looks an account up by its folded username
func (r *AccountRepository) GetAccountByUsername(ctx context.Context, usernameKey string) (*domain.Account, error) {
	return r.getAccount(ctx, `a.username_key = $1`, usernameKey)
}

// GetAccountByEmail looks an account up by its folded email
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, emailKey string) (*domain.Account, error) {
	return r.getAccount(ctx, `a.email_key = $1`, emailKey)
}

func (r *AccountRepository) getAccount(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE ` + where
	account, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	return account, nil
}

// UpdateAccount writes the editable profile fields. Balance and roles have dedicated writes.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account *domain.Account, keys repository.AccountKeys) error {
	accountID, ok := parseID(account.ID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	query := `
		UPDATE accounts
		SET username = $2, username_key = $3, first_name = $4, last_name = $5,
		    email = $6, email_key = $7, phone_number = $8, birthday = $9,
		    profile_picture = $10, bio = $11, accept_emails = $12, updated_at = NOW()
		WHERE account_id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		accountID,
		account.Username,
		keys.Username,
		account.FirstName,
		account.LastName,
		account.Email,
		keys.Email,
		account.PhoneNumber,
		account.Birthday,
		account.ProfilePicture,
		account.Bio,
		account.AcceptEmails,
	).Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAccountNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAccount, err)
	}
	return nil
}

// UpdatePasswordHash replaces the stored credential
func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	accountID, ok := parseID(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = NOW() WHERE account_id = $1`,
		accountID, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SetRoles overwrites the role list
func (r *AccountRepository) SetRoles(ctx context.Context, id string, roles []domain.Role) error {
	accountID, ok := parseID(id)
	if !ok {
		return domain.ErrAccountNotFound
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET roles = $2, updated_at = NOW() WHERE account_id = $1`,
		accountID, rolesToStrings(roles))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRoles, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ListAccounts returns every account with its linked identity, newest first
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]domain.AccountWithIdentity, error) {
	query := `
		SELECT ` + accountColumns + `,
		       li.name, li.uuid, li.skin_url, li.skin_variant, li.linked_at
		FROM accounts a
		LEFT JOIN linked_identities li ON li.account_id = a.account_id
		ORDER BY a.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	defer rows.Close()

	var result []domain.AccountWithIdentity
	for rows.Next() {
		var (
			a     domain.Account
			roles []string
			li    nullableIdentity
		)
		err := rows.Scan(
			&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash,
			&a.PhoneNumber, &a.Birthday, &a.ProfilePicture, &a.Bio, &roles, &a.Points,
			&a.AcceptEmails, &a.CreatedAt, &a.UpdatedAt,
			&li.Name, &li.UUID, &li.SkinURL, &li.SkinVariant, &li.LinkedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
		}
		a.Roles = stringsToRoles(roles)
		result = append(result, domain.AccountWithIdentity{Account: a, Identity: li.toDomain(a.ID)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	return result, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a     domain.Account
		roles []string
	)
	err := row.Scan(
		&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash,
		&a.PhoneNumber, &a.Birthday, &a.ProfilePicture, &a.Bio, &roles, &a.Points,
		&a.AcceptEmails, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Roles = stringsToRoles(roles)
	return &a, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func stringsToRoles(roles []string) []domain.Role {
	out := make([]domain.Role, len(roles))
	for i, r := range roles {
		out[i] = domain.Role(r)
	}
	return out
}
