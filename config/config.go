package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server configures the backend process
type Server struct {
	Port           string
	DBDriver       string
	DBPath         string
	DBMaxOpenConns int
	RequestTimeout time.Duration
}

// Client configures the clock client
type Client struct {
	APIURL       string
	PollInterval time.Duration
	ErrorTTL     time.Duration
	HTTPTimeout  time.Duration
}

// loadEnvFile loads a .env file if one exists. A missing file is fine.
func loadEnvFile() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}
}

// LoadServer reads the backend configuration from the environment
func LoadServer() (*Server, error) {
	loadEnvFile()

	maxConns, err := getInt("DB_MAX_OPEN_CONNS", 4)
	if err != nil {
		return nil, err
	}

	timeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", timeout)
	}

	return &Server{
		Port:           getString("PORT", "3000"),
		DBDriver:       getString("DB_DRIVER", "sqlite3"),
		DBPath:         getString("DB_PATH", "clocklog.db"),
		DBMaxOpenConns: maxConns,
		RequestTimeout: timeout,
	}, nil
}

// LoadClient reads the client configuration from the environment
func LoadClient() (*Client, error) {
	loadEnvFile()

	interval, err := getDuration("POLL_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", interval)
	}

	ttl, err := getDuration("ERROR_TTL", 3*time.Second)
	if err != nil {
		return nil, err
	}

	httpTimeout, err := getDuration("HTTP_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	return &Client{
		APIURL:       getString("API_URL", "http://localhost:3000"),
		PollInterval: interval,
		ErrorTTL:     ttl,
		HTTPTimeout:  httpTimeout,
	}, nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
