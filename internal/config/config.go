package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client needs from the environment.
type Config struct {
	Stage          string
	APIBaseURL     string
	APIToken       string
	RequestTimeout time.Duration
	ResendAPIKey   string
	ReminderFrom   string

	// Signed-in account profile. A real deployment gets this from the
	// auth provider; here it comes from the environment.
	UserID       string
	UserName     string
	UserEmail    string
	BusinessName string
	Address      string
	PhoneNumber  string
}

// Load reads a .env file when present and builds the config from the
// environment. Missing optional values fall back to development defaults.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Stage:          getEnv("STAGE", "dev"),
		APIBaseURL:     getEnv("INVOGEN_API_BASE_URL", "http://localhost:8000"),
		APIToken:       os.Getenv("INVOGEN_API_TOKEN"),
		RequestTimeout: 30 * time.Second,
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ReminderFrom:   getEnv("INVOGEN_REMINDER_FROM", "billing@invogen.app"),

		UserID:       getEnv("INVOGEN_USER_ID", "local-user"),
		UserName:     getEnv("INVOGEN_USER_NAME", "Local User"),
		UserEmail:    os.Getenv("INVOGEN_USER_EMAIL"),
		BusinessName: os.Getenv("INVOGEN_BUSINESS_NAME"),
		Address:      os.Getenv("INVOGEN_BUSINESS_ADDRESS"),
		PhoneNumber:  os.Getenv("INVOGEN_BUSINESS_PHONE"),
	}

	if raw := os.Getenv("INVOGEN_REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.RequestTimeout = d
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
