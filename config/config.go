// config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL         string
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	MigrationsURL string

	// StoreURL selects the remote HTTP document store instead of Postgres.
	StoreURL   string
	Collection string

	RedisURL string
	CacheTTL time.Duration

	ServerPort int
	PageSize   int

	LogLevel string
	LogFile  string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	serverPort, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		serverPort = 8080
	}
	pageSize, err := strconv.Atoi(os.Getenv("PAGE_SIZE"))
	if err != nil || pageSize <= 0 {
		pageSize = 8
	}
	cacheTTL, err := time.ParseDuration(os.Getenv("CACHE_TTL"))
	if err != nil || cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	cfg := &Config{
		MigrationsURL: getenv("MIGRATIONS_URL", "file://internal/migrations"),
		StoreURL:      os.Getenv("STORE_URL"),
		Collection:    getenv("STORE_COLLECTION", "songs"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      cacheTTL,
		ServerPort:    serverPort,
		PageSize:      pageSize,
		LogLevel:      getenv("LOG_LEVEL", "debug"),
		LogFile:       os.Getenv("LOG_FILE"),
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
		if err != nil {
			dbPort = 5432
		}
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), getenv("DB_HOST", "localhost"), dbPort, os.Getenv("DB_NAME"))
	}

	parsedDBURL, err := url.Parse(dbURL)
	if err != nil {
		return nil, err
	}

	cfg.DBURL = dbURL
	cfg.DBHost = parsedDBURL.Hostname()
	cfg.DBPort, _ = strconv.Atoi(parsedDBURL.Port())
	cfg.DBUser = parsedDBURL.User.Username()
	cfg.DBPassword, _ = parsedDBURL.User.Password()
	cfg.DBName = strings.TrimPrefix(parsedDBURL.Path, "/")

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
