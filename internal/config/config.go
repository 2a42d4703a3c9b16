package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultEnv         = "dev"
	defaultDBPath      = "./bladecost.db"
	defaultPort        = "8080"
	defaultAdminClient = "admin"
	defaultMaxSections = 8
	defaultCacheSize   = 256
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env         string
	DBPath      string
	Port        string
	AdminClient string
	APISecret   string
	MaxSections int
	CacheSize   int
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom loads the dotenv file at path, if present, and then reads the environment.
// Variables already set in the environment win over the file.
func LoadFrom(path string) Config {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: failed to load %s: %v", path, err)
	}

	cfg := Config{
		Env:         getenv("APP_ENV", defaultEnv),
		DBPath:      getenv("DB_PATH", defaultDBPath),
		Port:        getenv("PORT", defaultPort),
		AdminClient: getenv("ADMIN_CLIENT", defaultAdminClient),
		APISecret:   os.Getenv("API_SECRET"),
		MaxSections: getenvInt("MAX_SECTIONS", defaultMaxSections),
		CacheSize:   getenvInt("CACHE_SIZE", defaultCacheSize),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("warning: %s=%q is not a positive integer, using %d", key, raw, fallback)
		return fallback
	}
	return v
}
