package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/saofrance/shop-api/internal/auth"
	"github.com/saofrance/shop-api/internal/domain"
)

// SessionManager issues and revokes login sessions; implemented by auth.Registry
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Revoke(ctx context.Context, accountID string) error
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// HandleLogin returns the account's session token, issuing one if needed
// @Summary Log in
// @Description Returns the single active session token of the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} auth.LoginResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func HandleLogin(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		result, err := sessions.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			// do not reveal whether the username exists
			if errors.Is(err, domain.ErrAccountNotFound) {
				err = domain.ErrInvalidCredentials
			}
			respondServiceError(w, r, "login", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleLogout revokes the caller's session
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/logout [post]
func HandleLogout(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		if err := sessions.Revoke(r.Context(), acc.ID); err != nil {
			respondServiceError(w, r, "logout", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLoggedOut})
	}
}
