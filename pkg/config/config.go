package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const devCookieSecret = "dev-cookie-secret-change-me"

// Store drivers understood by InitDB
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port          string
	Env           string
	ClientURL     string
	CookieSecret  string
	StoreDriver   string
	PostgresURL   string
	MongoURI      string
	MongoDatabase string
	DemoUserName  string
	SeedData      bool
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		ClientURL:     getEnv("CLIENT_URL", "http://localhost:3000"),
		CookieSecret:  getEnv("COOKIE_SECRET", ""),
		StoreDriver:   getEnv("STORE_DRIVER", DriverPostgres),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "comments"),
		DemoUserName:  getEnv("DEMO_USER_NAME", "Saifuddin"),
		SeedData:      getEnvBool("SEED_DATA", true),
	}
	if cfg.CookieSecret == "" && !cfg.IsProd() {
		cfg.CookieSecret = devCookieSecret
	}
	return cfg
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.CookieSecret == "" {
		return fmt.Errorf("COOKIE_SECRET environment variable not set")
	}
	switch c.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
}

// IsProd reports whether the server runs in production
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q, using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}
