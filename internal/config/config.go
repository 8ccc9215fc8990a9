package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting of the service. Values come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"mindful"`
	MongoTimeout  time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`

	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenExpiry time.Duration `envconfig:"TOKEN_EXPIRY" default:"72h"`

	RequireEmailVerification bool   `envconfig:"REQUIRE_EMAIL_VERIFICATION" default:"true"`
	PublicBaseURL            string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiTimeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"587"`
	SMTPSender   string `envconfig:"SMTP_SENDER"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	Timezone       string   `envconfig:"APP_TIMEZONE" default:"Local"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EnableCron     bool     `envconfig:"ENABLE_CRON" default:"true"`

	location *time.Location
}

// Location is the time zone used to decide where a calendar day starts.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Load reads the configuration and reports the first problem found.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	return &cfg, nil
}

// LoadConfig is Load for main: it exits the process when the configuration is unusable.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	return cfg
}
