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
	Keys     APIKeys
	Ai       AIConfig
	Review   ReviewConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	JWTSecret   string
	HuggingFace string
}

type AIConfig struct {
	LLMProvider string // "placeholder", "ollama" or "huggingface"
	LLMModel    string // e.g. "llama3", "qwen2.5"
	LLMBaseURL  string
}

// ReviewConfig holds the pacing of review workspaces and where the
// suggestion and analysis collaborators live.
type ReviewConfig struct {
	AnalysisDelay       time.Duration
	FixDelay            time.Duration
	TypingPerChar       time.Duration
	TypingJitter        time.Duration
	TypingMax           time.Duration
	SessionTTL          time.Duration
	CollaboratorBaseURL string
	CollaboratorTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "placeholder"),
			LLMModel:    getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		},
		Review: ReviewConfig{
			AnalysisDelay:       getEnvAsDuration("REVIEW_ANALYSIS_DELAY", 2500*time.Millisecond),
			FixDelay:            getEnvAsDuration("REVIEW_FIX_DELAY", 1500*time.Millisecond),
			TypingPerChar:       getEnvAsDuration("REVIEW_TYPING_PER_CHAR", 20*time.Millisecond),
			TypingJitter:        getEnvAsDuration("REVIEW_TYPING_JITTER", 500*time.Millisecond),
			TypingMax:           getEnvAsDuration("REVIEW_TYPING_MAX", 6*time.Second),
			SessionTTL:          getEnvAsDuration("REVIEW_SESSION_TTL", time.Hour),
			CollaboratorBaseURL: getEnv("COLLABORATOR_BASE_URL", baseURL),
			CollaboratorTimeout: getEnvAsDuration("COLLABORATOR_TIMEOUT", 30*time.Second),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

// getEnvAsDuration accepts Go duration strings ("1.5s") or plain milliseconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil && d >= 0 {
		return d
	}
	if ms := getEnvAsInt(key, -1); ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
