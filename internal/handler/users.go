package handler

import (
	"net/http"
	"time"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/domain"
)

// RegisterRequest is the body of POST /users
type RegisterRequest struct {
	Username     string     `json:"username" validate:"required,min=3,max=32,excludesall=@ /\\"`
	FirstName    string     `json:"first_name" validate:"max=64"`
	LastName     string     `json:"last_name" validate:"max=64"`
	Email        string     `json:"email" validate:"required,email,max=254"`
	Password     string     `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber  string     `json:"phone_number" validate:"max=32"`
	Birthday     *time.Time `json:"birthday"`
	AcceptEmails bool       `json:"accept_emails"`
}

// UpdateAccountRequest is the body of PUT /users; absent fields are unchanged
type UpdateAccountRequest struct {
	Username        *string    `json:"username" validate:"omitempty,min=3,max=32,excludesall=@ /\\"`
	FirstName       *string    `json:"first_name" validate:"omitempty,max=64"`
	LastName        *string    `json:"last_name" validate:"omitempty,max=64"`
	Email           *string    `json:"email" validate:"omitempty,email,max=254"`
	PhoneNumber     *string    `json:"phone_number" validate:"omitempty,max=32"`
	Birthday        *time.Time `json:"birthday"`
	ProfilePicture  *string    `json:"profile_picture" validate:"omitempty,url,max=512"`
	Bio             *string    `json:"bio" validate:"omitempty,max=500"`
	AcceptEmails    *bool      `json:"accept_emails"`
	Password        *string    `json:"password" validate:"omitempty,min=8,max=72"`
	CurrentPassword *string    `json:"current_password" validate:"omitempty,max=72"`
}

// ForgotPasswordRequest is the body of POST /users/password/forgot
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of POST /users/password/reset
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// HandleRegister creates an account
// @Summary Register
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New account"
// @Success 201 {object} domain.Account
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users [post]
func HandleRegister(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		acc, err := svc.Register(r.Context(), account.RegisterInput{
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Password:     req.Password,
			PhoneNumber:  req.PhoneNumber,
			Birthday:     req.Birthday,
			AcceptEmails: req.AcceptEmails,
		})
		if err != nil {
			respondServiceError(w, r, "register", err)
			return
		}
		respondJSON(w, http.StatusCreated, acc)
	}
}

// HandleGetPrivateProfile returns the caller's own profile
// @Summary Own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.PrivateProfile
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/profile [get]
func HandleGetPrivateProfile(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		profile, err := svc.GetPrivateProfile(r.Context(), acc.ID)
		if err != nil {
			respondServiceError(w, r, "get private profile", err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleGetPublicProfile returns another member's public profile
// @Summary Public profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} domain.PublicProfile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/profile/{id} [get]
func HandleGetPublicProfile(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		profile, err := svc.GetPublicProfile(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "get public profile", err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleUpdateAccount applies a partial update to the caller's account
// @Summary Update own account
// @Description Changing the email revokes the session. Changing the password requires current_password.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/users [put]
func HandleUpdateAccount(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		var req UpdateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update account"); err != nil {
			return
		}

		updated, err := svc.Update(r.Context(), acc.ID, account.UpdateInput{
			Username:        req.Username,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			PhoneNumber:     req.PhoneNumber,
			Birthday:        req.Birthday,
			ProfilePicture:  req.ProfilePicture,
			Bio:             req.Bio,
			AcceptEmails:    req.AcceptEmails,
			Password:        req.Password,
			CurrentPassword: req.CurrentPassword,
		})
		if err != nil {
			respondServiceError(w, r, "update account", err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
	}
}

// HandleForgotPassword mails a reset link. The answer is the same whether or
// not the email is registered.
// @Summary Request a password reset
// @Tags users
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/users/password/forgot [post]
func HandleForgotPassword(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Forgot password"); err != nil {
			return
		}
		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			respondServiceError(w, r, "request password reset", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgResetRequested})
	}
}

// HandleResetPassword sets a new password from a reset token
// @Summary Reset password
// @Tags users
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/password/reset [post]
func HandleResetPassword(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reset password"); err != nil {
			return
		}
		if err := svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			respondServiceError(w, r, "reset password", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPasswordReset})
	}
}

// HandleListAccounts lists every account with its linked identity
// @Summary List accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.AccountWithIdentity
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/users [get]
func HandleListAccounts(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.ListAccounts(r.Context())
		if err != nil {
			respondServiceError(w, r, "list accounts", err)
			return
		}
		if accounts == nil {
			accounts = []domain.AccountWithIdentity{}
		}
		respondJSON(w, http.StatusOK, accounts)
	}
}
