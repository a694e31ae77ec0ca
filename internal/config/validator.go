package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains or renames a variable
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty for the API to start
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"JWT_SECRET",
	"GAME_SERVER_API_KEY",
	"STRIPE_SECRET_KEY",
	"FRONT_CLIENT_URL",
}

// envWarning flags a variable that is set but looks unsafe or disables a feature
type envWarning struct {
	key     string
	applies func(value string) bool
	message string
}

func equals(example string) func(string) bool {
	return func(v string) bool { return v == example }
}

var envWarnings = []envWarning{
	{"DB_PASSWORD", equals(ExampleDBPassword), "DB_PASSWORD appears to be using the example value - please use a secure password"},
	{"JWT_SECRET", equals(ExampleJWTSecret), "JWT_SECRET appears to be using the example value - generate a secure key with: openssl rand -hex 32"},
	{"GAME_SERVER_API_KEY", equals(ExampleGameAPIKey), "GAME_SERVER_API_KEY appears to be using the example value"},
	{"SMTP_HOST", func(v string) bool { return v == "" }, "SMTP_HOST is not set - transactional mails are disabled"},
	{"STRIPE_SECRET_KEY", func(v string) bool {
		return strings.HasPrefix(v, StripeTestKeyPrefix) && os.Getenv("ENVIRONMENT") == EnvironmentProduction
	}, "STRIPE_SECRET_KEY is a test key in production - checkouts will not charge real cards"},
}

// ValidateEnv checks the env schema version and that every required variable is set
func ValidateEnv() error {
	switch version := os.Getenv("ENV_SCHEMA_VERSION"); {
	case version == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	case version != ExpectedEnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, version)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then lists non-fatal issues
// in declaration order
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.applies(os.Getenv(w.key)) {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
