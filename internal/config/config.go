package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token codec implementations selectable via TOKEN_CODEC
const (
	CodecPaseto = "paseto"
	CodecJWT    = "jwt"
)

// Refresh token stores selectable via TOKEN_STORE
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	// Codec selects the token implementation: "paseto" (v4.local) or "jwt" (HS256).
	// PASETO requires both secrets to be exactly 32 bytes.
	Codec               string
	AccessTokenSecret   []byte
	RefreshTokenSecret  []byte
	AccessTokenDuration time.Duration
	// TokenStore selects where refresh token records live: "postgres" or "redis"
	TokenStore    string
	AdminPassword string
}

// Load reads configuration from environment variables.
// A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "dev"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "userapi"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Codec:               getEnv("TOKEN_CODEC", CodecPaseto),
			AccessTokenSecret:   []byte(getEnv("ACCESS_TOKEN_SECRET", "")),
			RefreshTokenSecret:  []byte(getEnv("REFRESH_TOKEN_SECRET", "")),
			AccessTokenDuration: getDurationEnv("ACCESS_TOKEN_DURATION", 10*time.Minute),
			TokenStore:          getEnv("TOKEN_STORE", StorePostgres),
			AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AuthConfig) validate() error {
	if len(c.AccessTokenSecret) == 0 {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if len(c.RefreshTokenSecret) == 0 {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}

	switch c.Codec {
	case CodecPaseto:
		// v4.local keys must be exactly 32 bytes
		if len(c.AccessTokenSecret) != 32 {
			return fmt.Errorf("ACCESS_TOKEN_SECRET must be exactly 32 bytes for paseto, got %d", len(c.AccessTokenSecret))
		}
		if len(c.RefreshTokenSecret) != 32 {
			return fmt.Errorf("REFRESH_TOKEN_SECRET must be exactly 32 bytes for paseto, got %d", len(c.RefreshTokenSecret))
		}
	case CodecJWT:
		// HS256 accepts keys of any length
	default:
		return fmt.Errorf("TOKEN_CODEC must be %q or %q, got %q", CodecPaseto, CodecJWT, c.Codec)
	}

	switch c.TokenStore {
	case StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("TOKEN_STORE must be %q or %q, got %q", StorePostgres, StoreRedis, c.TokenStore)
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
