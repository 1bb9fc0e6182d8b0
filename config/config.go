package config

import "os"

// Config holds application configuration, loaded once at startup.
// This is a simple way to make config accessible globally.
type Config struct {
	Port         string
	DataSource   string // "csv" or "postgres"
	CSVPath      string
	DatabaseURL  string
	GeminiAPIKey string
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

// Load reads configuration from the environment, applying defaults.
func Load() {
	AppConfig = Config{
		Port:         getEnv("PORT", "4000"),
		DataSource:   getEnv("DATA_SOURCE", "csv"),
		CSVPath:      getEnv("CSV_PATH", "data/sales.csv"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
