package handler

import (
	"net/http"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/ledger"
)

// AdjustPointsRequest is the body of POST /admin/accounts/{id}/points.
// A positive amount grants points, a negative one revokes them.
type AdjustPointsRequest struct {
	Amount int64  `json:"amount" validate:"required,ne=0,min=-1000000000,max=1000000000"`
	Reason string `json:"reason" validate:"max=256"`
}

// RoleRequest is the body of POST /admin/accounts/{id}/roles
type RoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// HandleAdjustPoints grants or revokes points as an audited adjustment
// @Summary Adjust a balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body AdjustPointsRequest true "Signed amount"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/accounts/{id}/points [post]
func HandleAdjustPoints(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, ok := currentAccount(w, r)
		if !ok {
			return
		}
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		var req AdjustPointsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Adjust points"); err != nil {
			return
		}

		entry, err := svc.Adjust(r.Context(), ledger.AdjustInput{
			AccountID:  id,
			AuthorName: admin.Username,
			Amount:     req.Amount,
			Reason:     req.Reason,
		})
		if err != nil {
			respondServiceError(w, r, "adjust points", err)
			return
		}
		respondJSON(w, http.StatusCreated, entry)
	}
}

// HandleGrantRole adds a role to an account
// @Summary Grant a role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body RoleRequest true "Role"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/admin/accounts/{id}/roles [post]
func HandleGrantRole(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		var req RoleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant role"); err != nil {
			return
		}
		acc, err := svc.GrantRole(r.Context(), id, domain.Role(req.Role))
		if err != nil {
			respondServiceError(w, r, "grant role", err)
			return
		}
		respondJSON(w, http.StatusOK, acc)
	}
}

// HandleRevokeRole removes a role from an account
// @Summary Revoke a role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param role path string true "Role"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/accounts/{id}/roles/{role} [delete]
func HandleRevokeRole(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		role, ok := getPathParam(w, r, "role")
		if !ok {
			return
		}
		if !domain.Role(role).IsValid() {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRole)
			return
		}
		acc, err := svc.RevokeRole(r.Context(), id, domain.Role(role))
		if err != nil {
			respondServiceError(w, r, "revoke role", err)
			return
		}
		respondJSON(w, http.StatusOK, acc)
	}
}
