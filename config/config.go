package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthProviderClerk = "clerk"
	AuthProviderOIDC  = "oidc"
)

type ClerkConfig struct {
	SecretKey string
}

// IsConfigured returns true if all required Clerk configuration is present
func (c ClerkConfig) IsConfigured() bool {
	return c.SecretKey != ""
}

type OIDCConfig struct {
	IssuerURL string
	ClientID  string
	RoleClaim string
}

// IsConfigured returns true if all required OIDC configuration is present
func (c OIDCConfig) IsConfigured() bool {
	return c.IssuerURL != "" && c.ClientID != ""
}

type SlackConfig struct {
	AlertWebhookURL string
}

// IsConfigured returns true if Slack error alerts can be delivered
func (c SlackConfig) IsConfigured() bool {
	return c.AlertWebhookURL != ""
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

type AppConfig struct {
	// Core configuration
	DatabaseURL        string
	DatabaseSchema     string
	Port               string
	CORSAllowedOrigins string
	Environment        string
	ServerLogsURL      string
	RunMigrations      bool
	PagesDir           string

	SubscriptionSweepInterval time.Duration

	// Identity provider selection and settings
	AuthProvider string
	ClerkConfig  ClerkConfig
	OIDCConfig   OIDCConfig

	SlackConfig     SlackConfig
	RateLimitConfig RateLimitConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	sweepInterval, err := getDurationWithDefault("SUBSCRIPTION_SWEEP_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	requestsPerMinute, err := getIntWithDefault("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}

	burst, err := getIntWithDefault("RATE_LIMIT_BURST", 120)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:               databaseURL,
		DatabaseSchema:            getEnvWithDefault("DB_SCHEMA", "public"),
		Port:                      getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins:        getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:               getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:             getEnvWithDefault("SERVER_LOGS_URL", ""),
		RunMigrations:             getEnvWithDefault("RUN_MIGRATIONS", "true") == "true",
		PagesDir:                  os.Getenv("PAGES_DIR"),
		SubscriptionSweepInterval: sweepInterval,

		AuthProvider: getEnvWithDefault("AUTH_PROVIDER", AuthProviderClerk),
		ClerkConfig: ClerkConfig{
			SecretKey: os.Getenv("CLERK_SECRET_KEY"),
		},
		OIDCConfig: OIDCConfig{
			IssuerURL: os.Getenv("OIDC_ISSUER_URL"),
			ClientID:  os.Getenv("OIDC_CLIENT_ID"),
			RoleClaim: getEnvWithDefault("OIDC_ROLE_CLAIM", "role"),
		},

		SlackConfig: SlackConfig{
			AlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
		RateLimitConfig: RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			Burst:             burst,
		},
	}

	switch config.AuthProvider {
	case AuthProviderClerk:
		if !config.ClerkConfig.IsConfigured() {
			return nil, fmt.Errorf("clerk authentication is not configured (CLERK_SECRET_KEY is not set)")
		}
		log.Printf("✅ Clerk authentication configured")
	case AuthProviderOIDC:
		if !config.OIDCConfig.IsConfigured() {
			return nil, fmt.Errorf("OIDC authentication is not configured (OIDC_ISSUER_URL and OIDC_CLIENT_ID are required)")
		}
		log.Printf("✅ OIDC authentication configured for issuer %s", config.OIDCConfig.IssuerURL)
	default:
		return nil, fmt.Errorf("unsupported AUTH_PROVIDER %q (expected %q or %q)",
			config.AuthProvider, AuthProviderClerk, AuthProviderOIDC)
	}

	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack error alerts configured")
	} else {
		log.Printf("⚠️ Slack error alerts not configured - alerts will only be logged")
	}

	if config.RateLimitConfig.RequestsPerMinute <= 0 || config.RateLimitConfig.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return parsed, nil
}
