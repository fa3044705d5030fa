package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	AllowedOrigins     []string
	OpenRouterAPIKey   string
	OpenRouterBaseURL  string
	OpenRouterModel    string
	LLMTimeout         time.Duration
	ChatCleanupEnabled bool
	SessionTTL         time.Duration
	TesseractDataPath  string
	MaxFileSize        int64
	LogLevel           string
}

func LoadConfig() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1/chat/completions"
	}

	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "mistralai/mistral-7b-instruct"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = []string{v}
	}

	return &Config{
		ServerPort:         serverPort,
		AllowedOrigins:     origins,
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:  baseURL,
		OpenRouterModel:    model,
		LLMTimeout:         durationEnv("LLM_TIMEOUT_SECONDS", 30) * time.Second,
		ChatCleanupEnabled: boolEnv("CHAT_CLEANUP_ENABLED", false),
		SessionTTL:         durationEnv("SESSION_TTL_MINUTES", 60) * time.Minute,
		TesseractDataPath:  tesseractDataPath,
		MaxFileSize:        10 * 1024 * 1024, // 10 MB
		LogLevel:           logLevel,
	}
}

func durationEnv(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}

func boolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
