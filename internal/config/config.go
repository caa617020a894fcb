package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	Port        string
	Environment string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	JWTSecret string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	GeocoderBaseURL string
	NewsAPIBaseURL  string
	NewsAPIKey      string
	NewsCacheTTL    time.Duration

	UploadDir string

	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment. A .env file is honored
// when present but never required.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is a development convenience only
	}

	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:      getEnvOrDefault("DB_PORT", "5432"),
		DBUser:      getEnvOrDefault("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnvOrDefault("DB_NAME", "localhub"),
		DBSSLMode:   getEnvOrDefault("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		GeocoderBaseURL: getEnvOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		NewsAPIBaseURL:  getEnvOrDefault("NEWS_API_BASE_URL", "https://newsapi.org"),
		NewsAPIKey:      os.Getenv("NEWS_API_KEY"),
		NewsCacheTTL:    getEnvDuration("NEWS_CACHE_TTL", 5*time.Minute),

		UploadDir: getEnvOrDefault("UPLOAD_DIR", "uploads"),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvOrDefault("LOG_FILE", "server.log"),
	}
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
