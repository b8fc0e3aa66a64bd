package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendBaseURL   string
	HTTPTimeout      time.Duration
	DefaultPageSize  int
	PhoneMinDigits   int
	PhoneMaxDigits   int
	CatalogCacheTTL  time.Duration
	MongoURI         string
	RedisAddr        string
	RabbitMQURI      string
	RabbitMQExchange string
}

// Load reads .env if present, then builds the config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	return New()
}

func New() *Config {
	return &Config{
		BackendBaseURL:   getEnv("QUIZ_BACKEND_URL", "http://localhost:8080"),
		HTTPTimeout:      time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		DefaultPageSize:  getEnvInt("DEFAULT_PAGE_SIZE", 8),
		PhoneMinDigits:   getEnvInt("PHONE_MIN_DIGITS", 7),
		PhoneMaxDigits:   getEnvInt("PHONE_MAX_DIGITS", 15),
		CatalogCacheTTL:  time.Duration(getEnvInt("CATALOG_CACHE_TTL_SECONDS", 30)) * time.Second,
		MongoURI:         getEnv("MONGO_URI", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RabbitMQURI:      getEnv("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
