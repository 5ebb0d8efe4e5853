package config

import (
	"os"
	"strconv"
	"time"
)

// Config is loaded once at startup and passed by reference into each
// component. Nothing mutates it after New returns.
type Config struct {
	ProjectID string
	LogLevel  string
	Port      string

	JWTSecret string
	TokenTTL  time.Duration

	MLBaseURL string

	OpenAIBaseURL   string
	OpenAIKey       string
	OpenAIModel     string
	OpenAIMaxTokens int
	Temperature     float64

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	RelayBaseURL string
}

func New() *Config {
	return &Config{
		ProjectID: os.Getenv("PROJECTID"),
		LogLevel:  os.Getenv("LOGLEVEL"),
		Port:      getString("PORT", "8080"),

		JWTSecret: os.Getenv("JWTSECRET"),
		TokenTTL:  getDuration("TOKENTTL", 24*time.Hour),

		MLBaseURL: getString("MLBASEURL", "http://localhost:8000"),

		OpenAIBaseURL:   getString("OPENAIBASEURL", "https://api.openai.com"),
		OpenAIKey:       os.Getenv("OPENAIKEY"),
		OpenAIModel:     getString("OPENAIMODEL", "gpt-4o-mini"),
		OpenAIMaxTokens: getInt("OPENAIMAXTOKENS", 350),
		Temperature:     getFloat("OPENAITEMPERATURE", 0.7),

		ConnectTimeout: getDuration("CONNECTTIMEOUT", 5*time.Second),
		ReadTimeout:    getDuration("READTIMEOUT", 30*time.Second),

		RelayBaseURL: getString("RELAYBASEURL", "http://127.0.0.1:8000"),
	}
}

// ---- Helpers ----

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
