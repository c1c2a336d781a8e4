package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server         ServerConfig
	PropertyIndex  PropertyIndexConfig
	SemanticSearch SemanticSearchConfig
	Session        SessionConfig
	Redis          RedisConfig
	Game           GameConfig
	OTEL           OTELConfig
	Environment    string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// PropertyIndexConfig holds the property index collaborator configuration.
// BaseURL includes the collection path, e.g. http://localhost:6333/collections/default.
type PropertyIndexConfig struct {
	BaseURL string
}

// SemanticSearchConfig holds the semantic search collaborator configuration
type SemanticSearchConfig struct {
	BaseURL string
}

// SessionConfig holds game session store configuration
type SessionConfig struct {
	Store       string // "memory" or "redis"
	MaxSessions int    // memory store capacity
	TTLSeconds  int    // redis store expiration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GameConfig holds gameplay tuning
type GameConfig struct {
	PageSize    int // comparison results shown per page
	SearchLimit int // result count requested from the search service
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		PropertyIndex: PropertyIndexConfig{
			BaseURL: getEnv("PROPERTY_INDEX_URL", "http://localhost:6333/collections/default"),
		},
		SemanticSearch: SemanticSearchConfig{
			BaseURL: getEnv("SEMANTIC_SEARCH_URL", "http://localhost:8000/api/v1"),
		},
		Session: SessionConfig{
			Store:       getEnv("SESSION_STORE", "memory"),
			MaxSessions: getEnvAsInt("SESSION_MAX", 1024),
			TTLSeconds:  getEnvAsInt("SESSION_TTL_SECONDS", 3600),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Game: GameConfig{
			PageSize:    getEnvAsInt("GAME_PAGE_SIZE", 3),
			SearchLimit: getEnvAsInt("GAME_SEARCH_LIMIT", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "real-estate-game"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Environment: getEnv("APP_ENV", "development"),
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerAddr returns the HTTP listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
