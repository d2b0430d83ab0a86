// Package config reads process settings from the environment and an optional .env file.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	StorageMemory    = "memory"
	StorageSQLite    = "sqlite"
	StoragePostgres  = "postgres"
	StorageFirestore = "firestore"

	IdentityLocal    = "local"
	IdentityFirebase = "firebase"
)

type Config struct {
	AppPort string

	StorageDriver string
	DatabaseDSN   string

	FirebaseProjectID       string
	FirebaseCredentialsFile string

	IdentityProvider string
	JWTSecret        string
	TokenTTL         time.Duration

	RabbitMQURL   string
	RabbitMQQueue string

	CORSAllowOrigins string

	LogLevel  string
	LogFormat string

	AdminEmail    string
	AdminPassword string
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds a Config from v after applying defaults and environment binding.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("DATABASE_DSN", "file:stagestyle.db?cache=shared")
	v.SetDefault("IDENTITY_PROVIDER", IdentityLocal)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "order_queue")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:                 v.GetString("APP_PORT"),
		StorageDriver:           strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseDSN:             v.GetString("DATABASE_DSN"),
		FirebaseProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		IdentityProvider:        strings.ToLower(v.GetString("IDENTITY_PROVIDER")),
		JWTSecret:               v.GetString("JWT_SECRET"),
		TokenTTL:                v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:             v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:           v.GetString("RABBITMQ_QUEUE"),
		CORSAllowOrigins:        v.GetString("CORS_ALLOW_ORIGINS"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		LogFormat:               strings.ToLower(v.GetString("LOG_FORMAT")),
		AdminEmail:              v.GetString("ADMIN_EMAIL"),
		AdminPassword:           v.GetString("ADMIN_PASSWORD"),
	}
	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown driver names and incomplete backend settings.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	case StorageFirestore:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firestore storage driver")
		}
	default:
		return errors.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver == StoragePostgres && c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required for the postgres storage driver")
	}

	switch c.IdentityProvider {
	case IdentityLocal:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required for the local identity provider")
		}
	case IdentityFirebase:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firebase identity provider")
		}
	default:
		return errors.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}

	if c.TokenTTL <= 0 {
		return errors.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// UsesFirebase reports whether any backend needs a Firebase app.
func (c *Config) UsesFirebase() bool {
	return c.StorageDriver == StorageFirestore || c.IdentityProvider == IdentityFirebase
}
