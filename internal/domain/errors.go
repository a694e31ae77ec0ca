package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound    = "account not found"
	ErrMsgDuplicateAccount   = "username or email already in use"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgUnauthorized       = "unauthorized"
	ErrMsgForbidden          = "forbidden"
	ErrMsgSessionRevoked     = "session is no longer valid"
	ErrMsgInvalidResetToken  = "invalid or expired reset token"
	ErrMsgUnknownRole        = "unknown role"

	// Catalog errors
	ErrMsgCatalogItemNotFound = "catalog item not found"
	ErrMsgItemInactive        = "catalog item is not available"
	ErrMsgRealMoneyItem       = "item can only be bought with real money"
	ErrMsgPointsItem          = "item can only be bought with points"
	ErrMsgMissingProduct      = "item has no payment processor product"

	// Ledger errors
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgInvalidTransition   = "invalid status transition"
	ErrMsgSessionAlreadyUsed  = "payment session already used"
	ErrMsgPaymentNotCompleted = "payment not completed"
	ErrMsgPaymentMismatch     = "payment does not match the purchase"
	ErrMsgInvalidStatusToken  = "invalid payment status token"

	// Identity errors
	ErrMsgIdentityNotLinked = "no game account linked"

	// Notification errors
	ErrMsgUnknownMailType = "unknown mail type"

	// Upstream / system errors
	ErrMsgUpstreamFailure = "upstream service failure"
	ErrMsgDatabaseError   = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound    = errors.New(ErrMsgAccountNotFound)
	ErrDuplicateAccount   = errors.New(ErrMsgDuplicateAccount)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)
	ErrForbidden          = errors.New(ErrMsgForbidden)
	ErrSessionRevoked     = errors.New(ErrMsgSessionRevoked)
	ErrInvalidResetToken  = errors.New(ErrMsgInvalidResetToken)
	ErrUnknownRole        = errors.New(ErrMsgUnknownRole)

	// Catalog errors
	ErrCatalogItemNotFound = errors.New(ErrMsgCatalogItemNotFound)
	ErrItemInactive        = errors.New(ErrMsgItemInactive)
	ErrRealMoneyItem       = errors.New(ErrMsgRealMoneyItem)
	ErrPointsItem          = errors.New(ErrMsgPointsItem)
	ErrMissingProduct      = errors.New(ErrMsgMissingProduct)

	// Ledger errors
	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrTransactionNotFound = errors.New(ErrMsgTransactionNotFound)
	ErrInvalidTransition   = errors.New(ErrMsgInvalidTransition)
	ErrSessionAlreadyUsed  = errors.New(ErrMsgSessionAlreadyUsed)
	ErrPaymentNotCompleted = errors.New(ErrMsgPaymentNotCompleted)
	ErrPaymentMismatch     = errors.New(ErrMsgPaymentMismatch)
	ErrInvalidStatusToken  = errors.New(ErrMsgInvalidStatusToken)

	// Identity errors
	ErrIdentityNotLinked = errors.New(ErrMsgIdentityNotLinked)

	// Notification errors
	ErrUnknownMailType = errors.New(ErrMsgUnknownMailType)

	// Upstream / system errors
	ErrUpstreamFailure = errors.New(ErrMsgUpstreamFailure)
	ErrDatabaseError   = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
