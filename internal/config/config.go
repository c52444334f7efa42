package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yukikurage/taskboard-api/internal/constants"
)

const (
	DefaultPort        = "5000"
	DefaultDBDriver    = "sqlite"
	DefaultDatabaseURL = "taskboard.db"
	DefaultCORSOrigin  = "http://localhost:3000"

	// developmentSecret is only accepted outside release mode.
	developmentSecret = "default-secret-key-change-me"
)

type Config struct {
	Port        string        `yaml:"port"`
	GinMode     string        `yaml:"gin_mode"`
	DBDriver    string        `yaml:"db_driver"`
	DatabaseURL string        `yaml:"database_url"`
	DBLogLevel  string        `yaml:"db_log_level"`
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	CORSOrigins []string      `yaml:"cors_origins"`
}

func defaults() *Config {
	return &Config{
		Port:        DefaultPort,
		GinMode:     "debug",
		DBDriver:    DefaultDBDriver,
		DatabaseURL: DefaultDatabaseURL,
		DBLogLevel:  "warn",
		TokenTTL:    constants.DefaultTokenTTL,
		CORSOrigins: []string{DefaultCORSOrigin},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file in the working directory and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBLogLevel = getEnv("DB_LOG_LEVEL", cfg.DBLogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = getDurationEnv("TOKEN_TTL", cfg.TokenTTL)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}
}

// Validate checks the configuration and fills in the development secret
// when running outside release mode.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported GIN_MODE %q", c.GinMode)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}
	if c.JWTSecret == "" {
		if c.IsRelease() {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		log.Println("Warning: JWT_SECRET not set, using development secret")
		c.JWTSecret = developmentSecret
	}
	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// SigningKey returns the token signing secret.
func (c *Config) SigningKey() ([]byte, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("signing secret is not configured")
	}
	return []byte(c.JWTSecret), nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: Invalid duration value for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
