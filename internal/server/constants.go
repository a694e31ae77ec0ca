package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgTooManyRequests = "Too many requests, please slow down"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
	SecurityAlertLoginRate  = "SECURITY ALERT: Login rate limit exceeded"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgRequestRejected  = "Request rejected"
)

// APIPrefix is the mount point of the versioned API
const APIPrefix = "/api/v1"

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRequestID      = "X-Request-ID"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueNoStore              = "no-store"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Suspicious activity thresholds, counted per IP within DetectorWindow
const (
	DetectorWindow         = 5 * time.Minute
	FailedAuthAlertCount   = 5
	MaxRequestsPerWindow   = 1000
	HighRateLogEveryNthHit = 100
)

// Login limiter sizing
const (
	LoginLimiterCacheSize = 10000
	LoginLimiterIdleTTL   = 10 * time.Minute
	DefaultLoginPerMinute = 10
)

// Server limits
const (
	MaxBodyBytes      = 1 << 20
	ReadHeaderTimeout = 5 * time.Second
	CORSMaxAgeSeconds = 300
)

// QuietPaths are not logged per request
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
