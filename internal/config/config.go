package config

import (
	"log"
	"os"
	"strconv"

	"jarvina-be/internal/constant"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Assistant AssistantConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	Connection string
}

type APIKeys struct {
	Gemini     string
	OpenRouter string
}

type AIConfig struct {
	LLMProvider   string // "gemini", "ollama" or "openai"
	LLMModel      string // empty picks the provider default
	LLMBaseURL    string // OpenAI-compatible endpoint
	OllamaBaseURL string
	Temperature   float64
}

type AssistantConfig struct {
	MemoryFilePath      string
	InstructionsBackend string // "file", "redis" or "memory"
	InstructionsFile    string
	HistoryLimit        int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Connection: getEnv("DB_CONNECTION_STRING", "database/jarvina.db"),
		},
		Keys: APIKeys{
			Gemini:     getEnv("GEMINI_API_KEY", ""),
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", ""),
			LLMBaseURL:    getEnv("LLM_BASE_URL", constant.OpenAIDefaultBaseURL),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", constant.OllamaDefaultBaseURL),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", constant.DefaultTemperature),
		},
		Assistant: AssistantConfig{
			MemoryFilePath:      getEnv("MEMORY_FILE_PATH", "memory.json"),
			InstructionsBackend: getEnv("INSTRUCTIONS_BACKEND", "file"),
			InstructionsFile:    getEnv("CUSTOM_INSTRUCTIONS_FILE", "custom_instructions.json"),
			HistoryLimit:        getEnvAsInt("HISTORY_LIMIT", constant.DefaultHistoryLimit),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// APIKeyFor returns the credential the given LLM provider needs.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "openai":
		return c.Keys.OpenRouter
	case "ollama":
		return ""
	default:
		return c.Keys.Gemini
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
