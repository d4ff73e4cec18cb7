package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the host server configuration. The wasm client itself needs no
// configuration: it always talks to the same-origin /api prefix, which the
// host proxies to the backend.
type Config struct {
	Port       string
	BackendURL string
	RateLimit  float64
	RateBurst  int
}

// Load reads .env when present, then the environment, falling back to
// development defaults.
func Load() Config {
	godotenv.Load()

	return Config{
		Port:       getEnv("PORT", "3000"),
		BackendURL: getEnv("BACKEND_URL", "http://localhost:8000/api"),
		RateLimit:  getFloat("RATE_LIMIT", 50),
		RateBurst:  getInt("RATE_BURST", 100),
	}
}

func getEnv(key, fallback string) string {
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
