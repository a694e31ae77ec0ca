package account

import "time"

// Password hashing cost
const BcryptCost = 10

// Public profile cache sizing
const (
	DefaultProfileCacheSize = 1024
	DefaultProfileCacheTTL  = time.Minute
)

// Reset link path on the front client
const ResetPasswordPath = "/reset-password"

// Mail data keys
const (
	MailKeyFirstName = "first_name"
	MailKeyResetLink = "reset_link"
	MailKeyToken     = "token"
)

// Log messages
const (
	LogMsgAccountRegistered   = "Account registered"
	LogMsgAccountUpdated      = "Account updated"
	LogMsgPasswordResetIssued = "Password reset requested"
	LogMsgPasswordResetDone   = "Password reset completed"
	LogMsgPasswordChanged     = "Password changed"
	LogMsgRoleGranted         = "Role granted"
	LogMsgRoleRevoked         = "Role revoked"
	LogMsgResetUnknownEmail   = "Password reset requested for unknown email"
	LogMsgSessionRevokeFailed = "Failed to revoke session after credential change"
)
