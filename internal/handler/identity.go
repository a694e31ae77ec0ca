package handler

import (
	"net/http"

	"github.com/saofrance/shop-api/internal/identity"
)

// LinkIdentityRequest is the body of POST /users/identity/link
type LinkIdentityRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// HandleLinkIdentity exchanges a broker token and links the caller's game identity.
// An account that does not own the game gets has_game=false and nothing is stored.
// @Summary Link a game account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LinkIdentityRequest true "Broker access token"
// @Success 200 {object} domain.LinkResult
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/users/identity/link [post]
func HandleLinkIdentity(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		var req LinkIdentityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Link identity"); err != nil {
			return
		}
		result, err := svc.Link(r.Context(), acc.ID, req.AccessToken)
		if err != nil {
			respondServiceError(w, r, "link identity", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetIdentity returns the caller's linked identity
// @Summary Linked game account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.LinkedIdentity
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/users/identity [get]
func HandleGetIdentity(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		linked, err := svc.Get(r.Context(), acc.ID)
		if err != nil {
			respondServiceError(w, r, "get identity", err)
			return
		}
		respondJSON(w, http.StatusOK, linked)
	}
}
