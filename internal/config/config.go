package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds runtime settings read from the environment
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// MongoURI is optional; without it ended sessions are not archived
	MongoURI      string
	MongoDatabase string

	DiscordToken  string
	ApplicationID string

	// GuildID registers commands to a single guild for development
	GuildID string

	// HTTPAddr is the dashboard API listen address; empty disables the API
	HTTPAddr string

	LogLevel zerolog.Level

	// QuickSessionTTL is how long quick sessions live in Redis
	QuickSessionTTL time.Duration
}

// Load reads the optional .env file and then the environment
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are skipped and
// variables already set in the environment win.
func LoadFiles(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "clapometer"),
		DiscordToken:  getEnv("DISCORD_TOKEN", ""),
		ApplicationID: getEnv("APPLICATION_ID", ""),
		GuildID:       getEnv("GUILD_ID", ""),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
	}

	var err error
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.LogLevel, err = zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.QuickSessionTTL, err = time.ParseDuration(getEnv("QUICK_SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUICK_SESSION_TTL: %w", err)
	}
	if cfg.QuickSessionTTL <= 0 {
		return nil, errors.New("QUICK_SESSION_TTL must be positive")
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN environment variable is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
