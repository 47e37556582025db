package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DefaultReturnsAddress is the warehouse that receives customer returns.
const DefaultReturnsAddress = "119 Ranch Dr, Maggie Valley, NC 28751"

// Config is the environment-derived process configuration shared by the
// server and dbtool binaries.
type Config struct {
	Environment string
	Port        string

	// Empty DatabaseURL selects the in-memory stores for local runs.
	DatabaseURL string
	SeedPath    string

	// Empty RedisAddr disables the geocode cache.
	RedisAddr string

	PhotonBaseURL  string
	ReturnsAddress string
}

// Load reads configuration from the environment, with a .env file as an
// optional local override source.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SeedPath:       getEnv("SEED_PATH", "data/seeds/warehouses.json"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		PhotonBaseURL:  getEnv("PHOTON_BASE_URL", ""),
		ReturnsAddress: getEnv("RETURNS_ADDRESS", DefaultReturnsAddress),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
