package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the service configuration, read from the environment
// (optionally populated from a .env file by the caller).
type Config struct {
	Port         string
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	SeedPath     string
	RedisAddr    string
	ORSAPIKey    string
	TickInterval time.Duration
	MaxPoints    int
	MaxPopSize   int
	MaxRuns      int

	PopSize       int
	MutationRate  float64
	CrossoverRate float64
	Selection     string
}

func Load() Config {
	return Config{
		Port:         Get("PORT", "8080"),
		DBDriver:     Get("DB_DRIVER", "sqlite"),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/pointsets.json"),
		RedisAddr:    Get("REDIS_ADDR", ""),
		ORSAPIKey:    Get("ORS_API_KEY", ""),
		TickInterval: GetDuration("TICK_INTERVAL", 16*time.Millisecond),
		MaxPoints:    GetInt("MAX_POINTS", 50),
		MaxPopSize:   GetInt("MAX_POP_SIZE", 5000),
		MaxRuns:      GetInt("MAX_RUNS", 32),

		PopSize:       GetInt("GA_POP_SIZE", 100),
		MutationRate:  GetFloat("GA_MUTATION_RATE", 0.02),
		CrossoverRate: GetFloat("GA_CROSSOVER_RATE", 0.8),
		Selection:     Get("GA_SELECTION", "tournament"),
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float key=%s value=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
