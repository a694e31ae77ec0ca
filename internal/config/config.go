package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	// Session and password-reset tokens
	JWTSecret           string
	SessionTTL          time.Duration
	PasswordResetSecret string
	PasswordResetTTL    time.Duration

	// GameServerAPIKey authenticates the game servers polling for claims
	GameServerAPIKey string

	AllowedOrigins     []string
	TrustedProxies     []string
	LoginRatePerMinute int
	FrontClientURL     string

	// Payment processor
	StripeSecretKey   string
	PaymentCurrency   string
	PriceSyncInterval time.Duration

	// Mail delivery
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Staff purchase feed
	DiscordWebhookID    string
	DiscordWebhookToken string

	// Identity federation endpoints
	XboxUserAuthURL string
	XboxXSTSURL     string
	GameServicesURL string
	IdentityTimeout time.Duration

	WorkerCount     int
	WorkerQueueSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "shop-api"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "shop"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", 20),

		JWTSecret:           getEnv("JWT_SECRET", ""),
		SessionTTL:          getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		PasswordResetSecret: getEnv("PASSWORD_RESET_SECRET", ""),
		PasswordResetTTL:    getEnvAsDuration("PASSWORD_RESET_TTL", 15*time.Minute),

		GameServerAPIKey: getEnv("GAME_SERVER_API_KEY", ""),

		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS"),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),
		LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
		FrontClientURL:     strings.TrimRight(getEnv("FRONT_CLIENT_URL", "http://localhost:3000"), "/"),

		StripeSecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
		PaymentCurrency:   strings.ToLower(getEnv("PAYMENT_CURRENCY", "eur")),
		PriceSyncInterval: getEnvAsDuration("PRICE_SYNC_INTERVAL", 10*time.Minute),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnvAsInt("SMTP_PORT", 465),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", ""),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),

		XboxUserAuthURL: getEnv("XBOX_USER_AUTH_URL", DefaultXboxUserAuthURL),
		XboxXSTSURL:     getEnv("XBOX_XSTS_URL", DefaultXboxXSTSURL),
		GameServicesURL: strings.TrimRight(getEnv("GAME_SERVICES_URL", DefaultGameServicesURL), "/"),
		IdentityTimeout: getEnvAsDuration("IDENTITY_TIMEOUT", 10*time.Second),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", 4),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", 100),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	}
	if cfg.PasswordResetSecret == "" {
		cfg.PasswordResetSecret = cfg.JWTSecret + ResetSecretSuffix
	}
	if cfg.GameServerAPIKey == "" {
		return nil, fmt.Errorf("GAME_SERVER_API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default on error
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration accepts Go durations ("10m") or bare seconds ("600")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvAsList splits on whitespace and commas
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// MailEnabled reports whether SMTP delivery is configured
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != ""
}

// StaffFeedEnabled reports whether the Discord webhook is configured
func (c *Config) StaffFeedEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
