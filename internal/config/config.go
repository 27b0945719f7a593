package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Preference PreferenceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type PreferenceConfig struct {
	// LockWaitSeconds bounds how long a mutation waits for the per-user lock.
	LockWaitSeconds int
	// SweepIntervalSeconds is the cadence of the stale-trigger sweep.
	SweepIntervalSeconds int
	// RetrainThreshold is the number of new predictive events after which
	// a trained model counts as stale.
	RetrainThreshold int
	// HistoryDefaultLimit caps unpaginated history queries.
	HistoryDefaultLimit int
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Preference: PreferenceConfig{
			LockWaitSeconds:      getEnvAsInt("PREF_LOCK_WAIT_SECONDS", 5),
			SweepIntervalSeconds: getEnvAsInt("PREF_SWEEP_INTERVAL_SECONDS", 300),
			RetrainThreshold:     getEnvAsInt("PREF_RETRAIN_THRESHOLD", 10),
			HistoryDefaultLimit:  getEnvAsInt("PREF_HISTORY_DEFAULT_LIMIT", 100),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
