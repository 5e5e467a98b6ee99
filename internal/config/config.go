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
	Chat     ChatConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Groq         string
	IndexTopic   string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "groq"
	LLMModel          string // e.g. "llama3", "llama-3.1-8b-instant"
	RequestTimeout    time.Duration
}

// ChatConfig holds the tunables of the conversational loop. The window
// sizes bound how much history each LLM call sees; the caps bound how
// much history a session retains at all.
type ChatConfig struct {
	ClassifyWindow   int
	AnswerWindow     int
	HistoryCap       int
	LegacyHistoryCap int
	SummarizerWindow int
	ChatTopK         int
	QueryTopK        int
	AnswerWordBudget int
	SessionTTL       time.Duration
	SessionSweep     time.Duration
}

type UploadConfig struct {
	Dir          string
	MaxSelected  int
	WatchEnabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Groq:         getEnv("GROQ_API_KEY", ""),
			IndexTopic:   getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			RequestTimeout:    getEnvAsDuration("LLM_REQUEST_TIMEOUT", 120*time.Second),
		},
		Chat: ChatConfig{
			ClassifyWindow:   getEnvAsInt("CHAT_CLASSIFY_WINDOW", 20),
			AnswerWindow:     getEnvAsInt("CHAT_ANSWER_WINDOW", 15),
			HistoryCap:       getEnvAsInt("CHAT_HISTORY_CAP", 40),
			LegacyHistoryCap: getEnvAsInt("QUERY_HISTORY_CAP", 20),
			SummarizerWindow: getEnvAsInt("QUERY_SUMMARIZER_WINDOW", 10),
			ChatTopK:         getEnvAsInt("CHAT_TOP_K", 3),
			QueryTopK:        getEnvAsInt("QUERY_TOP_K", 4),
			AnswerWordBudget: getEnvAsInt("CHAT_ANSWER_WORD_BUDGET", 250),
			SessionTTL:       getEnvAsDuration("CHAT_SESSION_TTL", 24*time.Hour),
			SessionSweep:     getEnvAsDuration("CHAT_SESSION_SWEEP", time.Hour),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxSelected:  getEnvAsInt("UPLOAD_MAX_SELECTED", 3),
			WatchEnabled: getEnvAsBool("UPLOAD_WATCH_ENABLED", false),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
