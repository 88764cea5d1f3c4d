package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Snowflake SnowflakeConfig
	Matcher   MatcherConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	SummarizeTopic     string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// AIConfig selects the text-generation backend and its reproducibility knobs.
type AIConfig struct {
	LLMProvider       string // "cortex" or "ollama"
	LLMModel          string // e.g. "llama3-8b", "mistral-large"
	OllamaBaseURL     string
	Temperature       float64 // fixed low value so repeated analyses stay comparable
	MaxPromptChars    int     // prompt budget before oldest chunks are truncated
	GenerationTimeout int     // seconds
}

// SnowflakeConfig carries the Cortex REST endpoints. Both the completion and
// the document/audio parsing providers share the account URL and token.
type SnowflakeConfig struct {
	AccountURL string // https://<account>.snowflakecomputing.com
	Token      string // programmatic access token
	Warehouse  string
	Database   string
	Schema     string
	Stage      string // internal stage uploaded files are parsed from
}

type MatcherConfig struct {
	TopN int // matched references returned per category
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			SummarizeTopic:     getEnv("SUMMARIZE_REFERENCE_TOPIC_NAME", "SUMMARIZE_REFERENCE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ML Discovery Assistant"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "cortex"),
			LLMModel:          getEnv("LLM_MODEL", "llama3-8b"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			MaxPromptChars:    getEnvAsInt("LLM_MAX_PROMPT_CHARS", 12000),
			GenerationTimeout: getEnvAsInt("LLM_GENERATION_TIMEOUT_SECONDS", 90),
		},
		Snowflake: SnowflakeConfig{
			AccountURL: getEnv("SNOWFLAKE_ACCOUNT_URL", ""),
			Token:      getEnv("SNOWFLAKE_TOKEN", ""),
			Warehouse:  getEnv("SNOWFLAKE_WAREHOUSE", "ML_HELPER_WH"),
			Database:   getEnv("SNOWFLAKE_DATABASE", "ML_HELPER_APP"),
			Schema:     getEnv("SNOWFLAKE_SCHEMA", "CORE"),
			Stage:      getEnv("SNOWFLAKE_UPLOAD_STAGE", "UPLOAD_STAGE"),
		},
		Matcher: MatcherConfig{
			TopN: getEnvAsInt("MATCHER_TOP_N", 3),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
