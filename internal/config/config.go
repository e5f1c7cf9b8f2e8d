package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	FirebaseAPIKey                   string `mapstructure:"FIREBASE_API_KEY"`

	// AppID partitions every collection under artifacts/{AppID} when set.
	AppID string `mapstructure:"APP_ID"`

	UseFirebaseEmulator      bool   `mapstructure:"USE_FIREBASE_EMULATOR"`
	FirestoreEmulatorHost    string `mapstructure:"FIRESTORE_EMULATOR_HOST"`
	FirebaseAuthEmulatorHost string `mapstructure:"FIREBASE_AUTH_EMULATOR_HOST"`

	ClientURL     string `mapstructure:"CLIENT_URL"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	VertexProjectID string `mapstructure:"VERTEX_PROJECT_ID"`
	VertexLocation  string `mapstructure:"VERTEX_LOCATION"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL"`

	RedisURL              string        `mapstructure:"REDIS_URL"`
	SharedContentCacheTTL time.Duration `mapstructure:"SHARED_CONTENT_CACHE_TTL"`
	// SharedContentCacheSize bounds the in-process cache used when REDIS_URL is empty.
	SharedContentCacheSize int `mapstructure:"SHARED_CONTENT_CACHE_SIZE"`

	WorkspaceIdleTimeout time.Duration `mapstructure:"WORKSPACE_IDLE_TIMEOUT"`
	ShutdownTimeout      time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"LOG_LEVEL",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"FIREBASE_API_KEY",
	"APP_ID",
	"USE_FIREBASE_EMULATOR",
	"FIRESTORE_EMULATOR_HOST",
	"FIREBASE_AUTH_EMULATOR_HOST",
	"CLIENT_URL",
	"PUBLIC_BASE_URL",
	"VERTEX_PROJECT_ID",
	"VERTEX_LOCATION",
	"GEMINI_MODEL",
	"REDIS_URL",
	"SHARED_CONTENT_CACHE_TTL",
	"SHARED_CONTENT_CACHE_SIZE",
	"WORKSPACE_IDLE_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
}

// LoadConfig loads configuration from an optional .env file and the environment using Viper.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("USE_FIREBASE_EMULATOR", false)
	v.SetDefault("FIRESTORE_EMULATOR_HOST", "localhost:8080")
	v.SetDefault("FIREBASE_AUTH_EMULATOR_HOST", "localhost:9099")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:3000/")
	v.SetDefault("VERTEX_LOCATION", "us-central1")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("SHARED_CONTENT_CACHE_TTL", "1h")
	v.SetDefault("SHARED_CONTENT_CACHE_SIZE", 10000)
	v.SetDefault("WORKSPACE_IDLE_TIMEOUT", "30m")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	if cfg.VertexProjectID == "" {
		cfg.VertexProjectID = cfg.FirebaseProjectID
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if !c.UseFirebaseEmulator && c.FirebaseAPIKey == "" {
		return errors.New("FIREBASE_API_KEY is required unless USE_FIREBASE_EMULATOR is true")
	}
	if c.SharedContentCacheTTL <= 0 {
		return errors.New("SHARED_CONTENT_CACHE_TTL must be positive")
	}
	if c.SharedContentCacheSize <= 0 {
		return errors.New("SHARED_CONTENT_CACHE_SIZE must be positive")
	}
	if c.WorkspaceIdleTimeout <= 0 {
		return errors.New("WORKSPACE_IDLE_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if strings.Contains(c.AppID, "/") {
		return errors.New("APP_ID must not contain '/'")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsRelease reports whether gin should run in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
