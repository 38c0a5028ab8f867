package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// MarketplaceFeeRate is the fraction of each sale retained by the system
	// fee wallet, e.g. "0.025" for 2.5%. Zero disables the fee.
	MarketplaceFeeRate decimal.Decimal

	// FeeLookupTimeout bounds every network fee schedule lookup. The transfer
	// is aborted, not guessed, when the deadline passes.
	FeeLookupTimeout time.Duration

	// RateLimit is the ulule/limiter formatted rate, e.g. "120-M".
	RateLimit string

	// WebhookAPIKey is the shared secret machine callers present in the
	// x-api-key header on the deposit and mint webhooks. An empty value
	// keeps those routes locked.
	WebhookAPIKey string

	PosthogAPIKey   string
	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "wallet-marketplace-app")
	viper.SetDefault("MARKETPLACE_FEE_RATE", "0")
	viper.SetDefault("FEE_LOOKUP_TIMEOUT", "2s")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("WEBHOOK_API_KEY", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	feeRateStr := viper.GetString("MARKETPLACE_FEE_RATE")
	feeRate, err := decimal.NewFromString(feeRateStr)
	if err != nil || feeRate.IsNegative() || feeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		log.Printf("Warning: Invalid value for MARKETPLACE_FEE_RATE ('%s'). Defaulting to 0.\n", feeRateStr)
		feeRate = decimal.Zero
	}
	cfg.MarketplaceFeeRate = feeRate

	feeTimeoutStr := viper.GetString("FEE_LOOKUP_TIMEOUT")
	feeTimeout, err := time.ParseDuration(feeTimeoutStr)
	if err != nil {
		feeTimeout = 2 * time.Second
		log.Printf("Warning: Invalid value for FEE_LOOKUP_TIMEOUT ('%s'). Defaulting to %s.\n", feeTimeoutStr, feeTimeout.String())
	}
	cfg.FeeLookupTimeout = feeTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.WebhookAPIKey = viper.GetString("WEBHOOK_API_KEY")
	if cfg.WebhookAPIKey == "" {
		log.Println("Warning: WEBHOOK_API_KEY not set. Deposit and mint webhooks will reject all callers.")
	}
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
