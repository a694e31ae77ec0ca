package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saofrance/shop-api/internal/auth"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
)

// MaxRequestBodyBytes bounds every decoded JSON body
const MaxRequestBodyBytes = 1 << 20

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written.
//
// Example usage:
//
//	var req LoginRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err := dec.Decode(req); err != nil {
		log.Info(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetOptionalQueryParam returns the query parameter or defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// getIntQueryParam parses an optional integer query parameter.
// On a malformed value it writes a 400 and returns false.
func getIntQueryParam(w http.ResponseWriter, r *http.Request, paramName string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return 0, false
	}
	return n, true
}

// getPathParam returns a required chi URL parameter
func getPathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, name))
		return "", false
	}
	return value, true
}

// currentAccount returns the account authenticated by auth.RequireAuth
func currentAccount(w http.ResponseWriter, r *http.Request) (*domain.Account, bool) {
	acc, ok := auth.AccountFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthorizedError)
		return nil, false
	}
	return acc, true
}
