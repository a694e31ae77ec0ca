package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidRole           = "Unknown role"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgUpstreamError        = "An external service is unavailable. Please try again later."
	ErrMsgInvalidInputError    = "Invalid input"
	ErrMsgDuplicateAccountErr  = "Username or email already in use"
	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgItemNotFoundError    = "Product not found"
	ErrMsgTxNotFoundError      = "Transaction not found"
	ErrMsgCredentialsError     = "Invalid username or password"
	ErrMsgUnauthorizedError    = "Authentication required"
	ErrMsgForbiddenError       = "You are not allowed to do that"
	ErrMsgResetTokenError      = "This reset link is invalid or has expired"
	ErrMsgNotEnoughPointsError = "Not enough points"
	ErrMsgItemInactiveError    = "This product is not available"
	ErrMsgRealMoneyItemError   = "This product can only be bought with real money"
	ErrMsgPointsItemError      = "This product can only be bought with points"
	ErrMsgMissingProductError  = "This product cannot be paid online"
	ErrMsgIdentityError        = "Link your game account before buying"
	ErrMsgTransitionError      = "This transaction cannot move to that status"
	ErrMsgSessionUsedError     = "This payment has already been recorded"
	ErrMsgPaymentPendingError  = "The payment is not completed"
	ErrMsgPaymentMismatchError = "The payment does not match this purchase"
	ErrMsgStatusTokenError     = "Invalid payment confirmation link"
	ErrMsgUnknownRoleError     = "Unknown role"
	ErrMsgUnknownMailError     = "Unknown mail type"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Request failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
)

// Success messages
const (
	MsgLoggedOut          = "Logged out"
	MsgResetRequested     = "If an account exists for this email, a reset link has been sent"
	MsgPasswordReset      = "Password updated"
	MsgProductRemoved     = "Product removed"
	StatusOK              = "ok"
	StatusUnavailable     = "unavailable"
	MsgDatabaseConnFailed = "database connection failed"
)
