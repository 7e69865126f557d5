package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server reads from the environment.
// Built once at startup and handed to whoever needs it — no package globals.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string

	GroqAPIKey     string
	GroqModel      string
	RefinerTimeout time.Duration
}

// Load reads .env (if present) and the process environment.
// A missing .env is fine in production where envs come from the platform.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getenv("PORT", "8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "nutrifresh"),
		DBPort:     getenv("DB_PORT", "5432"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		GroqModel:      getenv("GROQ_MODEL", "llama-3.1-8b-instant"),
		RefinerTimeout: getdur("REFINER_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
