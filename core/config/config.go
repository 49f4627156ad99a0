package config

import (
	"os"
	"strconv"
)

// AuthProviderConfig points at the hosted auth service. The anon key signs
// ordinary requests, the service-role key unlocks the admin endpoints and
// must never reach a client.
type AuthProviderConfig struct {
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string
	JWTSecret      string
}

// ScraperConfig is the external scraping backend, reached over plain HTTP
// with a shared bearer token.
type ScraperConfig struct {
	BaseURL     string
	BearerToken string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
}

type Config struct {
	Port               string
	Environment        string
	DatabaseURL        string
	AppBaseURL         string
	AuthProvider       AuthProviderConfig
	Scraper            ScraperConfig
	Email              EmailConfig
	RateLimitPerMinute int
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	scraperURL := os.Getenv("SCRAPER_API_URL")
	if scraperURL == "" {
		scraperURL = "http://localhost:8000"
	}

	return Config{
		Port:        port,
		Environment: os.Getenv("APP_ENV"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AppBaseURL:  os.Getenv("APP_BASE_URL"),
		AuthProvider: AuthProviderConfig{
			BaseURL:        os.Getenv("AUTH_PROVIDER_URL"),
			AnonKey:        os.Getenv("AUTH_PROVIDER_ANON_KEY"),
			ServiceRoleKey: os.Getenv("AUTH_PROVIDER_SERVICE_ROLE_KEY"),
			JWTSecret:      os.Getenv("AUTH_PROVIDER_JWT_SECRET"),
		},
		Scraper: ScraperConfig{
			BaseURL:     scraperURL,
			BearerToken: os.Getenv("SCRAPER_SECRET_TOKEN"),
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  os.Getenv("INVITE_FROM_EMAIL"),
		},
		RateLimitPerMinute: readInt("RATE_LIMIT_PER_MIN", 100),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
