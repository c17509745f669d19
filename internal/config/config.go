package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SecretKey   string
	TokenExpiry time.Duration
	GinMode     string
	Port        string
}

// Load builds the configuration from the environment. A .env file in the
// working directory is applied first when present. The returned value is
// passed down explicitly; nothing reads the environment after startup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	expireMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil || expireMinutes <= 0 {
		expireMinutes = 30
	}

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "pmuser"),
		DBPassword:  getEnv("DB_PASSWORD", "pmpassword"),
		DBName:      getEnv("DB_NAME", "project_management"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SecretKey:   getEnv("SECRET_KEY", "default-secret-key-change-me"),
		TokenExpiry: time.Duration(expireMinutes) * time.Minute,
		GinMode:     getEnv("GIN_MODE", "debug"),
		Port:        getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
