package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	Port        string
	Environment string
	JWTSecret   string
	CORSOrigin  string
	UploadDir   string

	RateLimitMax    int
	RateLimitWindow time.Duration

	BcryptCost int
}

// Load reads configuration from the environment, with defaults suitable for
// local development. A .env file in the working directory is honored if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "cms"),
		DBPassword: getEnv("DB_PASSWORD", "cms"),
		DBName:     getEnv("DB_NAME", "company_cms"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:3000"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,

		BcryptCost: getEnvInt("BCRYPT_COST", 12),
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EffectiveBcryptCost clamps the configured cost to the range bcrypt accepts,
// never below the library default.
func (c *Config) EffectiveBcryptCost() int {
	if c.BcryptCost < bcrypt.DefaultCost {
		return bcrypt.DefaultCost
	}
	if c.BcryptCost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return c.BcryptCost
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
