package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	StorageDriver      string // "postgres" or "memory"
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Notion      string
	Anthropic   string
	HuggingFace string
	JWTSecret   string
}

// NotionConfigured reports whether Notion import can run.
func (k APIKeys) NotionConfigured() bool {
	return strings.TrimSpace(k.Notion) != ""
}

// AnthropicConfigured reports whether memo enrichment has credentials.
func (k APIKeys) AnthropicConfigured() bool {
	return strings.TrimSpace(k.Anthropic) != ""
}

type AIConfig struct {
	Provider           string // "anthropic", "ollama" or "huggingface"
	Model              string
	OllamaBaseURL      string
	HuggingFaceBaseURL string
	EnrichmentMode     string // "sync" or "async"
	TimeoutSeconds     int
}

// LLMEndpoint returns the base URL and key for the configured provider.
func (c *Config) LLMEndpoint() (baseURL, apiKey string) {
	switch c.Ai.Provider {
	case "ollama":
		return c.Ai.OllamaBaseURL, ""
	case "huggingface":
		return c.Ai.HuggingFaceBaseURL, c.Keys.HuggingFace
	}
	return "", c.Keys.Anthropic
}

type EventsConfig struct {
	Topic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			StorageDriver:      getEnv("STORAGE_DRIVER", "postgres"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Notion:      getEnv("NOTION_API_KEY", ""),
			Anthropic:   getEnv("ANTHROPIC_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
			JWTSecret:   getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			Provider:           getEnv("LLM_PROVIDER", "anthropic"),
			Model:              getEnv("LLM_MODEL", ""),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", ""),
			EnrichmentMode:     getEnv("AI_ENRICHMENT_MODE", "sync"),
			TimeoutSeconds:     getEnvAsInt("AI_TIMEOUT_SECONDS", 30),
		},
		Events: EventsConfig{
			Topic: getEnv("WORKSPACE_EVENTS_TOPIC", "WORKSPACE_EVENTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
