package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
)

type contextKey string

const accountKey contextKey = "account"

// Validator resolves a bearer token to an account
type Validator interface {
	Validate(ctx context.Context, bearer string) (*domain.Account, error)
}

// WithAccount stores the authenticated account in ctx
func WithAccount(ctx context.Context, acc *domain.Account) context.Context {
	ctx = context.WithValue(ctx, accountKey, acc)
	return logger.WithAccountID(ctx, acc.ID)
}

// AccountFromContext returns the account set by RequireAuth
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	acc, ok := ctx.Value(accountKey).(*domain.Account)
	return acc, ok && acc != nil
}

// RequireAuth rejects requests without a valid, currently registered bearer token
func RequireAuth(v Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrMsgMissingToken)
				return
			}
			acc, err := v.Validate(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Info(LogMsgTokenRejected, "path", r.URL.Path, "error", err)
				if errors.Is(err, domain.ErrSessionRevoked) {
					writeError(w, http.StatusUnauthorized, domain.ErrMsgSessionRevoked)
					return
				}
				if errors.Is(err, domain.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, domain.ErrMsgUnauthorized)
					return
				}
				writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
		})
	}
}

// OptionalAuth attaches the account when a valid bearer token is present and
// otherwise lets the request through anonymously
func OptionalAuth(v Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			acc, err := v.Validate(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
		})
	}
}

// RequireRoles admits accounts holding at least one of roles. It must run after RequireAuth.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc, ok := AccountFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, domain.ErrMsgUnauthorized)
				return
			}
			if !acc.HasAnyRole(roles...) {
				logger.FromContext(r.Context()).Warn(LogMsgForbiddenRequest, "path", r.URL.Path, "roles", acc.Roles)
				writeError(w, http.StatusForbidden, domain.ErrMsgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPIKey guards the game server endpoints with a shared key
func RequireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderAPIKey)
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.FromContext(r.Context()).Warn(LogMsgAPIKeyRejected,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", provided != "")
				writeError(w, http.StatusUnauthorized, domain.ErrMsgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(HeaderAuthorization)
	if len(h) < len(BearerPrefix) || !strings.EqualFold(h[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(BearerPrefix):])
	return token, token != ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
