package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreMongo    = "mongo"
	StoreSupabase = "supabase"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	StoreDriver     string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	SupabaseURL     string
	SupabaseAnonKey string

	AllowedOrigins   []string
	OrganizerJWKSURL string

	RateLimitPerMinute int
	RateLimitBurst     int

	MailProvider    string
	MailFromAddress string
	MailFromName    string
	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		StoreDriver:     strings.ToLower(getEnvWithDefault("STORE_DRIVER", StoreMongo)),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "rsvp"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_URL_ANON_KEY"),

		AllowedOrigins:   splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		OrganizerJWKSURL: os.Getenv("ORGANIZER_JWKS_URL"),

		MailProvider:    strings.ToLower(getEnvWithDefault("MAIL_PROVIDER", "noop")),
		MailFromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:    getEnvWithDefault("MAIL_FROM_NAME", "RSVP"),
		AWSRegion:       getEnvWithDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:  os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	var err error
	if cfg.RateLimitPerMinute, err = getIntWithDefault("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getIntWithDefault("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	// Validate required fields
	switch cfg.StoreDriver {
	case StoreMongo:
		if cfg.MongoDBURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required")
		}
		if strings.Contains(cfg.MongoDBURI, "<password>") && cfg.MongoDBPassword == "" {
			return nil, fmt.Errorf("MONGODB_PASSWORD is required")
		}
	case StoreSupabase:
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL is required")
		}
		if cfg.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.MailProvider {
	case "noop", "":
	case "ses":
		if cfg.MailFromAddress == "" {
			return nil, fmt.Errorf("MAIL_FROM_ADDRESS is required")
		}
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
