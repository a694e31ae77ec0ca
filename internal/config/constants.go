package config

// Identity federation defaults
const (
	DefaultXboxUserAuthURL = "https://user.auth.xboxlive.com/user/authenticate"
	DefaultXboxXSTSURL     = "https://xsts.auth.xboxlive.com/xsts/authorize"
	DefaultGameServicesURL = "https://api.minecraftservices.com"
)

const (
	// MinSecretLength is the shortest accepted HMAC signing secret
	MinSecretLength = 16

	// ResetSecretSuffix derives a distinct reset secret when none is configured
	ResetSecretSuffix = ":password-reset"
)

// Example values shipped in .env.example that must never reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleJWTSecret  = "generate_with_openssl_rand_hex_32"
	ExampleGameAPIKey = "generate_game_server_key"
)

// StripeTestKeyPrefix marks a Stripe key that only works in test mode
const StripeTestKeyPrefix = "sk_test_"

// EnvironmentProduction is the ENVIRONMENT value of the live deployment
const EnvironmentProduction = "prod"
