package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the rejected fields of a request
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with its mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "status", status, "error", err)
	} else {
		log.Info(LogMsgServiceError, "operation", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP statuses and user-facing messages.
// Anything unrecognised is a 500 with a generic message.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	// validation
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrInvalidResetToken):
		return http.StatusBadRequest, ErrMsgResetTokenError
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest, ErrMsgUnknownRoleError
	case errors.Is(err, domain.ErrUnknownMailType):
		return http.StatusBadRequest, ErrMsgUnknownMailError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughPointsError
	case errors.Is(err, domain.ErrItemInactive):
		return http.StatusBadRequest, ErrMsgItemInactiveError
	case errors.Is(err, domain.ErrRealMoneyItem):
		return http.StatusBadRequest, ErrMsgRealMoneyItemError
	case errors.Is(err, domain.ErrPointsItem):
		return http.StatusBadRequest, ErrMsgPointsItemError
	case errors.Is(err, domain.ErrMissingProduct):
		return http.StatusBadRequest, ErrMsgMissingProductError
	case errors.Is(err, domain.ErrIdentityNotLinked):
		return http.StatusBadRequest, ErrMsgIdentityError
	case errors.Is(err, domain.ErrPaymentNotCompleted):
		return http.StatusBadRequest, ErrMsgPaymentPendingError
	case errors.Is(err, domain.ErrPaymentMismatch):
		return http.StatusBadRequest, ErrMsgPaymentMismatchError
	case errors.Is(err, domain.ErrInvalidStatusToken):
		return http.StatusBadRequest, ErrMsgStatusTokenError

	// conflicts
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, ErrMsgDuplicateAccountErr
	case errors.Is(err, domain.ErrSessionAlreadyUsed):
		return http.StatusConflict, ErrMsgSessionUsedError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgTransitionError

	// not found
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrCatalogItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, ErrMsgTxNotFoundError

	// authn / authz
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgCredentialsError
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionRevoked):
		return http.StatusUnauthorized, ErrMsgUnauthorizedError
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrMsgForbiddenError

	case errors.Is(err, domain.ErrUpstreamFailure):
		return http.StatusBadGateway, ErrMsgUpstreamError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
