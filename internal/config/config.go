package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL string // Consolidated DB Connection URL
	RedisURL    string
	Port        string
	APIToken    string // Bearer token guarding the API; empty disables the check

	CityRecordBaseURL    string
	ScrapeCookie         string
	ScrapeUserAgent      string
	ScrapePages          int
	ScrapeTimeoutSeconds int
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	if err := godotenv.Load(); err != nil {
		// Don't fail if .env is not present, just log it
		// log.Printf("Warning: .env file not found, reading from environment")
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		Port:        getEnv("PORT", "8080"),
		APIToken:    getEnv("API_TOKEN", ""),

		CityRecordBaseURL:    getEnv("CITY_RECORD_BASE_URL", "https://a856-cityrecord.nyc.gov"),
		ScrapeCookie:         getEnv("SCRAPE_COOKIE", ""),
		ScrapeUserAgent:      getEnv("SCRAPE_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"),
		ScrapePages:          getEnvInt("SCRAPE_PAGES", 40),
		ScrapeTimeoutSeconds: getEnvInt("SCRAPE_TIMEOUT_SECONDS", 20),
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
