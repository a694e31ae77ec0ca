package auth

import "time"

// Token settings
const (
	TokenIssuer         = "saofrance-shop"
	AudienceSession     = "session"
	AudienceReset       = "password-reset"
	MinSecretLength     = 16
	DefaultResetTTL     = 15 * time.Minute
	DefaultSessionTTL   = 24 * time.Hour
	BearerPrefix        = "Bearer "
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
)

// Log messages
const (
	LogMsgSessionIssued    = "Session issued"
	LogMsgSessionReused    = "Session reused"
	LogMsgSessionRevoked   = "Session revoked"
	LogMsgLoginFailed      = "Login failed"
	LogMsgTokenRejected    = "Bearer token rejected"
	LogMsgAPIKeyRejected   = "Game server API key rejected"
	LogMsgForbiddenRequest = "Request forbidden by role check"
)

// Error messages returned by the middleware
const (
	ErrMsgMissingToken   = "missing bearer token"
	ErrMsgInvalidToken   = "invalid token"
	ErrMsgMissingSubject = "token has no subject"
	ErrMsgShortSecret    = "secret must be at least 16 characters"
)
