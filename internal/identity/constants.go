package identity

// Federation request constants
const (
	AuthMethodRPS              = "RPS"
	UserAuthSiteName           = "user.auth.xboxlive.com"
	UserAuthRelyingParty       = "http://auth.xboxlive.com"
	XSTSRelyingParty           = "rp://api.minecraftservices.com/"
	XSTSSandbox                = "RETAIL"
	TokenTypeJWT               = "JWT"
	RPSTicketPrefix            = "d="
	IdentityTokenFormat        = "XBL3.0 x=%s;%s"
	LoginWithXboxPath          = "/authentication/login_with_xbox"
	EntitlementsPath           = "/entitlements/mcstore"
	ProfilePath                = "/minecraft/profile"
	ContentTypeJSON            = "application/json"
	MaxResponseBytes     int64 = 1 << 20
)

// Log messages
const (
	LogMsgCachedTokenUsed   = "Using cached exchange token"
	LogMsgExchangeCompleted = "Federated token exchange completed"
	LogMsgNoGame            = "Linked account does not own the game"
	LogMsgIdentityLinked    = "Game identity linked"
	LogMsgLinkFailed        = "Game identity link failed"
	LogMsgCacheWriteFailed  = "Failed to cache exchange token"
)

// Error messages
const (
	ErrMsgBrokerTokenRequired = "broker access token is required"
	ErrMsgNoUserHash          = "xsts response carries no user hash"
	ErrMsgEmptyToken          = "exchange returned an empty token"
)
