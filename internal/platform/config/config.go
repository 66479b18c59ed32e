package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // BUSINESS_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ReconciliationConfig tunes the bulk reconciler and the shift closer.
type ReconciliationConfig struct {
	PageSize     int           `validate:"min=1,max=1000"`
	BatchSize    int           `validate:"min=1,max=500"` // the store rejects batches above 500 writes
	BatchRetries int           `validate:"min=0,max=10"`
	RetryBackoff time.Duration `validate:"min=0"`
	RentalPolicy string        `validate:"oneof=cash_remainder entered_as_cash"`
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string `validate:"required"`
	IsProduction       bool
	EnableDBCheck      bool
	MigrationsPath     string `validate:"required"`
	JWTSecret          string `validate:"required,min=16"`
	JWTIssuer          string
	JWTExpiryDuration  time.Duration
	RateLimit          string `validate:"required"` // ulule/limiter format, e.g. "120-M"
	CORSAllowedOrigins []string
	BusinessTimezone   string `validate:"required"`
	Location           *time.Location
	Reconciliation     ReconciliationConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "pos-shift-app")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Manila")
	viper.SetDefault("RECON_PAGE_SIZE", 500)
	viper.SetDefault("RECON_BATCH_SIZE", 450)
	viper.SetDefault("RECON_BATCH_RETRIES", 3)
	viper.SetDefault("RECON_RETRY_BACKOFF", "500ms")
	viper.SetDefault("RENTAL_POLICY", "cash_remainder")

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.BusinessTimezone = viper.GetString("BUSINESS_TIMEZONE")
	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", cfg.BusinessTimezone, err)
	}
	cfg.Location = loc

	backoffStr := viper.GetString("RECON_RETRY_BACKOFF")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil {
		backoff = 500 * time.Millisecond
		log.Printf("Warning: Invalid value for RECON_RETRY_BACKOFF ('%s'). Defaulting to %s.\n", backoffStr, backoff)
	}

	cfg.Reconciliation = ReconciliationConfig{
		PageSize:     viper.GetInt("RECON_PAGE_SIZE"),
		BatchSize:    viper.GetInt("RECON_BATCH_SIZE"),
		BatchRetries: viper.GetInt("RECON_BATCH_RETRIES"),
		RetryBackoff: backoff,
		RentalPolicy: strings.ToLower(strings.TrimSpace(viper.GetString("RENTAL_POLICY"))),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags on cfg and its reconciliation settings.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
