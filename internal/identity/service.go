package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saofrance/shop-api/internal/concurrency"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/repository"
)

// Federation is the remote side of the linking flow; implemented by Client
type Federation interface {
	Exchange(ctx context.Context, brokerToken string) (*Exchange, error)
	HasGame(ctx context.Context, token string) (bool, error)
	Profile(ctx context.Context, token string) (*domain.GameProfile, error)
}

// ProfileInvalidator drops cached public profiles after a relink
type ProfileInvalidator interface {
	InvalidateProfile(id string)
}

// Service links game identities to accounts
type Service interface {
	Link(ctx context.Context, accountID, brokerToken string) (*domain.LinkResult, error)
	Get(ctx context.Context, accountID string) (*domain.LinkedIdentity, error)
}

type service struct {
	federation Federation
	repo       repository.Identity
	profiles   ProfileInvalidator
	locks      *concurrency.LockManager
	now        func() time.Time
}

// NewService creates the identity linking service
func NewService(federation Federation, repo repository.Identity, profiles ProfileInvalidator, locks *concurrency.LockManager) Service {
	return &service{
		federation: federation,
		repo:       repo,
		profiles:   profiles,
		locks:      locks,
		now:        time.Now,
	}
}

// Link resolves the game account behind brokerToken and stores it as the
// account's only linked identity. Calls for the same account are serialized.
func (s *service) Link(ctx context.Context, accountID, brokerToken string) (*domain.LinkResult, error) {
	if strings.TrimSpace(brokerToken) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgBrokerTokenRequired)
	}

	var result *domain.LinkResult
	err := s.locks.WithLock(accountID, func() error {
		var err error
		result, err = s.link(ctx, accountID, brokerToken)
		return err
	})
	if err != nil {
		metrics.IdentityLinks.WithLabelValues(metrics.ResultError).Inc()
		logger.FromContext(ctx).Warn(LogMsgLinkFailed, "account_id", accountID, "error", err)
		return nil, err
	}
	return result, nil
}

func (s *service) link(ctx context.Context, accountID, brokerToken string) (*domain.LinkResult, error) {
	log := logger.FromContext(ctx)

	token, err := s.exchangeToken(ctx, accountID, brokerToken)
	if err != nil {
		return nil, err
	}

	owns, err := s.federation.HasGame(ctx, token)
	if err != nil {
		return nil, err
	}
	if !owns {
		log.Info(LogMsgNoGame, "account_id", accountID)
		metrics.IdentityLinks.WithLabelValues(metrics.ResultNoGame).Inc()
		return &domain.LinkResult{HasGame: false}, nil
	}

	profile, err := s.federation.Profile(ctx, token)
	if err != nil {
		return nil, err
	}

	identity := &domain.LinkedIdentity{
		AccountID: accountID,
		Name:      profile.Name,
		UUID:      profile.ID,
		LinkedAt:  s.now(),
	}
	if skin := profile.ActiveSkin(); skin != nil {
		identity.SkinURL = skin.URL
		identity.SkinVariant = skin.Variant
	}
	if err := s.repo.ReplaceIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to store identity: %w", err)
	}
	if s.profiles != nil {
		s.profiles.InvalidateProfile(accountID)
	}

	log.Info(LogMsgIdentityLinked, "account_id", accountID, "game_name", identity.Name)
	metrics.IdentityLinks.WithLabelValues(metrics.ResultLinked).Inc()
	return &domain.LinkResult{HasGame: true, Profile: profile}, nil
}

// exchangeToken returns the cached game token when still valid, otherwise runs
// the federation hops and replaces the cache
func (s *service) exchangeToken(ctx context.Context, accountID, brokerToken string) (string, error) {
	log := logger.FromContext(ctx)

	cached, err := s.repo.GetExchangeToken(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to read exchange token: %w", err)
	}
	now := s.now()
	if cached.Valid(now) {
		log.Debug(LogMsgCachedTokenUsed, "account_id", accountID)
		return cached.Token, nil
	}

	exchange, err := s.federation.Exchange(ctx, brokerToken)
	if err != nil {
		return "", err
	}
	log.Debug(LogMsgExchangeCompleted, "account_id", accountID, "expires_in", exchange.ExpiresIn)

	err = s.repo.ReplaceExchangeToken(ctx, &domain.ExchangeToken{
		AccountID: accountID,
		Token:     exchange.Token,
		IssuedAt:  now,
		ExpiresAt: now.Add(exchange.ExpiresIn),
	})
	if err != nil {
		// the token is still usable for this call
		log.Warn(LogMsgCacheWriteFailed, "account_id", accountID, "error", err)
	}
	return exchange.Token, nil
}

// Get returns the linked identity, or nil when none is linked
func (s *service) Get(ctx context.Context, accountID string) (*domain.LinkedIdentity, error) {
	return s.repo.GetIdentity(ctx, accountID)
}
