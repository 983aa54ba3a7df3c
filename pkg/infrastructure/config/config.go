package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/skhandal/doi/pkg/domain/services"
)

// Config holds runtime configuration for the DOI tool
type Config struct {
	SalesFile     string
	InventoryFile string
	WindowDays    int
	OutputDir     string
	HTTPAddr      string
	LogFile       string

	S3Bucket     string
	S3Prefix     string
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
}

// Load reads configuration from a .env file (when present) and the
// environment. Every field has a working default, so Load never fails
// on missing values.
func Load() *Config {
	// A missing .env file is normal; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		SalesFile:     getEnv("DOI_SALES_FILE", "sales.csv"),
		InventoryFile: getEnv("DOI_INVENTORY_FILE", "inventory.csv"),
		WindowDays:    getEnvInt("DOI_WINDOW_DAYS", services.DefaultWindowDays),
		OutputDir:     getEnv("DOI_OUTPUT_DIR", "output"),
		HTTPAddr:      getEnv("DOI_HTTP_ADDR", ":8080"),
		LogFile:       getEnv("DOI_LOG_FILE", ""),
		S3Bucket:      getEnv("DOI_S3_BUCKET", ""),
		S3Prefix:      getEnv("DOI_S3_PREFIX", "doi"),
		AWSRegion:     getEnv("DOI_AWS_REGION", "ap-south-1"),
		AWSAccessKey:  getEnv("DOI_AWS_ACCESS_KEY", ""),
		AWSSecretKey:  getEnv("DOI_AWS_SECRET_KEY", ""),
	}
}

// PublishEnabled reports whether an S3 destination is configured
func (c *Config) PublishEnabled() bool {
	return c.S3Bucket != ""
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an integer environment variable with a fallback
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
