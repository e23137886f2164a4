package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
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
	Connection string
}

type AIConfig struct {
	LLMProvider     string // "openai", "ollama" or "echo"; empty resolves from credentials
	LLMModel        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string // OpenAI-compatible gateways (DashScope etc.)
	OllamaBaseURL   string
	GenerateTimeout time.Duration // bound on the primary sync call
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", ""),
			LLMModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_API_BASE", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GenerateTimeout: time.Duration(getEnvAsInt("GENERATE_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}
}

// ResolveLLMProvider picks the active backend once at startup: an explicit
// LLM_PROVIDER wins; otherwise an OpenAI key selects "openai" and the
// offline echo backend is the last resort.
func (c *Config) ResolveLLMProvider() string {
	if c.Ai.LLMProvider != "" {
		return c.Ai.LLMProvider
	}
	if c.Ai.OpenAIAPIKey != "" {
		return "openai"
	}
	return "echo"
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
