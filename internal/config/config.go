// Package config handles configuration loading for the feedback service.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the feedback service.
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	JWTSecret      string
	JWTExpiry      time.Duration
	BcryptCost     int
	Port           string
	Environment    string
	AllowedOrigins []string
	SwaggerHost    string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:         getEnvRequired("DB_HOST"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnvRequired("DB_USER"),
		DBPassword:     getEnvRequired("DB_PASSWORD"),
		DBName:         getEnvRequired("DB_NAME"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      getEnvRequired("JWT_SECRET"),
		JWTExpiry:      parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),
		BcryptCost:     10,
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		SwaggerHost:    getEnv("SWAGGER_HOST", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func splitOrigins(value string) []string {
	var origins []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
