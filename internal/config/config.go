package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseURL string
	JWTSecret   string
	CORSOrigin  string
}

// Load reads configuration from the environment. Required variables missing
// at startup are fatal; main loads .env beforehand via godotenv.
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}

	for name, value := range map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"JWT_SECRET":   cfg.JWTSecret,
	} {
		if value == "" {
			log.Fatalf("FATAL: environment variable %s must be set", name)
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
