package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/repository"
)

// Notifier delivers transactional mail without blocking the caller
type Notifier interface {
	SendMail(ctx context.Context, mail domain.Mail)
}

// SessionRevoker drops the active session of an account
type SessionRevoker interface {
	Revoke(ctx context.Context, accountID string) error
}

// ResetTokens issues and verifies password reset tokens
type ResetTokens interface {
	IssueReset(accountID, fingerprint string) (string, error)
	ParseReset(token string) (accountID, fingerprint string, err error)
}

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Password     string
	PhoneNumber  string
	Birthday     *time.Time
	AcceptEmails bool
}

// UpdateInput is a partial update; nil fields are left unchanged.
// Changing the password requires CurrentPassword.
type UpdateInput struct {
	Username        *string
	FirstName       *string
	LastName        *string
	Email           *string
	PhoneNumber     *string
	Birthday        *time.Time
	ProfilePicture  *string
	Bio             *string
	AcceptEmails    *bool
	Password        *string
	CurrentPassword *string
}

// Service is the account directory
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetPrivateProfile(ctx context.Context, id string) (*domain.PrivateProfile, error)
	GetPublicProfile(ctx context.Context, id string) (*domain.PublicProfile, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ListAccounts(ctx context.Context) ([]domain.AccountWithIdentity, error)
	GrantRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
	RevokeRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
	// InvalidateProfile drops the cached public profile after an out-of-band change
	InvalidateProfile(id string)
}

// Config holds the account service settings
type Config struct {
	FrontClientURL  string
	ProfileCacheTTL time.Duration
	ProfileCacheLen int
}

type service struct {
	repo       repository.Account
	identities repository.Identity
	sessions   SessionRevoker
	resets     ResetTokens
	notifier   Notifier
	cache      *profileCache
	frontURL   string
}

// NewService creates the account directory
func NewService(repo repository.Account, identities repository.Identity, sessions SessionRevoker, resets ResetTokens, notifier Notifier, cfg Config) Service {
	return &service{
		repo:       repo,
		identities: identities,
		sessions:   sessions,
		resets:     resets,
		notifier:   notifier,
		cache:      newProfileCache(cfg.ProfileCacheLen, cfg.ProfileCacheTTL),
		frontURL:   strings.TrimRight(cfg.FrontClientURL, "/"),
	}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(in.Username)
	email := NormalizeEmail(in.Email)
	if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be between %d and %d characters",
			domain.ErrInvalidInput, domain.MinUsernameLength, domain.MaxUsernameLength)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	if err := s.ensureAvailable(ctx, username, email, ""); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:       username,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          email,
		PasswordHash:   hash,
		PhoneNumber:    strings.TrimSpace(in.PhoneNumber),
		Birthday:       in.Birthday,
		ProfilePicture: domain.DefaultProfilePicture,
		Bio:            domain.DefaultBio,
		Roles:          []domain.Role{domain.RoleUser},
		AcceptEmails:   in.AcceptEmails,
	}
	if err := s.repo.CreateAccount(ctx, account, keysFor(account)); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	metrics.AccountsRegistered.Inc()
	log.Info(LogMsgAccountRegistered, "account_id", account.ID, "username", account.Username)

	s.notifier.SendMail(ctx, domain.Mail{
		Type:     domain.MailRegistration,
		To:       account.Email,
		Username: account.Username,
		Data:     map[string]string{MailKeyFirstName: account.FirstName},
	})
	return account, nil
}

// ensureAvailable rejects a username or email already held by another account
func (s *service) ensureAvailable(ctx context.Context, username, email, selfID string) error {
	if username != "" {
		existing, err := s.repo.GetAccountByUsername(ctx, FoldKey(username))
		if err == nil && existing.ID != selfID {
			return domain.ErrDuplicateAccount
		}
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}
	}
	if email != "" {
		existing, err := s.repo.GetAccountByEmail(ctx, FoldKey(email))
		if err == nil && existing.ID != selfID {
			return domain.ErrDuplicateAccount
		}
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.repo.GetAccountByUsername(ctx, FoldKey(username))
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.GetAccountByID(ctx, id)
}

func (s *service) GetPrivateProfile(ctx context.Context, id string) (*domain.PrivateProfile, error) {
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	identity, err := s.identities.GetIdentity(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.PrivateProfile{Account: account, Identity: identity}, nil
}

func (s *service) GetPublicProfile(ctx context.Context, id string) (*domain.PublicProfile, error) {
	if p, ok := s.cache.Get(id); ok {
		return p, nil
	}
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	identity, err := s.identities.GetIdentity(ctx, id)
	if err != nil {
		return nil, err
	}
	p := domain.NewPublicProfile(account, identity)
	s.cache.Set(id, p)
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Account, error) {
	log := logger.FromContext(ctx)

	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var newUsername, newEmail string
	if in.Username != nil {
		u := strings.TrimSpace(*in.Username)
		if len(u) < domain.MinUsernameLength || len(u) > domain.MaxUsernameLength {
			return nil, fmt.Errorf("%w: username must be between %d and %d characters",
				domain.ErrInvalidInput, domain.MinUsernameLength, domain.MaxUsernameLength)
		}
		if FoldKey(u) != FoldKey(account.Username) {
			newUsername = u
		}
		account.Username = u
	}
	emailChanged := false
	if in.Email != nil {
		e := NormalizeEmail(*in.Email)
		if e == "" {
			return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
		}
		if FoldKey(e) != FoldKey(account.Email) {
			newEmail = e
			emailChanged = true
		}
		account.Email = e
	}
	if err := s.ensureAvailable(ctx, newUsername, newEmail, account.ID); err != nil {
		return nil, err
	}

	applyProfileFields(account, in)

	passwordChanged := false
	if in.Password != nil {
		if in.CurrentPassword == nil {
			return nil, fmt.Errorf("%w: current password is required", domain.ErrInvalidInput)
		}
		if err := CheckPassword(account.PasswordHash, *in.CurrentPassword); err != nil {
			return nil, err
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
		passwordChanged = true
	}

	if err := s.repo.UpdateAccount(ctx, account, keysFor(account)); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if passwordChanged {
		if err := s.repo.UpdatePasswordHash(ctx, account.ID, account.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
		log.Info(LogMsgPasswordChanged, "account_id", account.ID)
		s.notifier.SendMail(ctx, domain.Mail{
			Type:     domain.MailChangePasswordSuccess,
			To:       account.Email,
			Username: account.Username,
		})
	}
	s.cache.Invalidate(account.ID)

	if emailChanged || passwordChanged {
		s.revoke(ctx, account.ID)
	}

	log.Info(LogMsgAccountUpdated, "account_id", account.ID, "email_changed", emailChanged)
	return account, nil
}

func applyProfileFields(a *domain.Account, in UpdateInput) {
	if in.FirstName != nil {
		a.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		a.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.PhoneNumber != nil {
		a.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Birthday != nil {
		a.Birthday = in.Birthday
	}
	if in.ProfilePicture != nil {
		a.ProfilePicture = strings.TrimSpace(*in.ProfilePicture)
	}
	if in.Bio != nil {
		a.Bio = *in.Bio
	}
	if in.AcceptEmails != nil {
		a.AcceptEmails = *in.AcceptEmails
	}
}

func (s *service) revoke(ctx context.Context, accountID string) {
	if err := s.sessions.Revoke(ctx, accountID); err != nil {
		logger.FromContext(ctx).Error(LogMsgSessionRevokeFailed, "account_id", accountID, "error", err)
	}
}

// RequestPasswordReset mails a reset link. Unknown addresses succeed silently
// so the endpoint cannot be used to enumerate accounts.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	account, err := s.repo.GetAccountByEmail(ctx, FoldKey(email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		log.Info(LogMsgResetUnknownEmail)
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.resets.IssueReset(account.ID, passwordFingerprint(account.PasswordHash))
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.notifier.SendMail(ctx, domain.Mail{
		Type:     domain.MailResetPassword,
		To:       account.Email,
		Username: account.Username,
		Data: map[string]string{
			MailKeyToken:     token,
			MailKeyResetLink: s.frontURL + ResetPasswordPath + "?token=" + url.QueryEscape(token),
		},
	})
	log.Info(LogMsgPasswordResetIssued, "account_id", account.ID)
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	accountID, fingerprint, err := s.resets.ParseReset(token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if fingerprint != passwordFingerprint(account.PasswordHash) {
		return domain.ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.revoke(ctx, account.ID)

	s.notifier.SendMail(ctx, domain.Mail{
		Type:     domain.MailChangePasswordSuccess,
		To:       account.Email,
		Username: account.Username,
	})
	logger.FromContext(ctx).Info(LogMsgPasswordResetDone, "account_id", account.ID)
	return nil
}

func (s *service) ListAccounts(ctx context.Context) ([]domain.AccountWithIdentity, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *service) GrantRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRole, role)
	}
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.HasRole(role) {
		return account, nil
	}
	account.Roles = append(account.Roles, role)
	if err := s.repo.SetRoles(ctx, id, account.Roles); err != nil {
		return nil, err
	}
	s.cache.Invalidate(id)
	logger.FromContext(ctx).Info(LogMsgRoleGranted, "account_id", id, "role", role)
	return account, nil
}

func (s *service) RevokeRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRole, role)
	}
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.HasRole(role) {
		return account, nil
	}
	account.Roles = slices.DeleteFunc(account.Roles, func(r domain.Role) bool { return r == role })
	if err := s.repo.SetRoles(ctx, id, account.Roles); err != nil {
		return nil, err
	}
	s.cache.Invalidate(id)
	logger.FromContext(ctx).Info(LogMsgRoleRevoked, "account_id", id, "role", role)
	return account, nil
}

func (s *service) InvalidateProfile(id string) {
	s.cache.Invalidate(id)
}
