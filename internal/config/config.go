package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendType string
	CacheDir    string
	CreateDir   bool
	DirMode     os.FileMode
	FileMode    os.FileMode
	BoltPath    string
	DefaultTTL  time.Duration
	Compress    bool
	LogPath     string
}

func Load() *Config {
	// Load .env file if it exists (optional)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	return &Config{
		BackendType: getEnv("CACHE_BACKEND", "memory"),
		CacheDir:    getEnv("CACHE_DIR", ".cache"),
		CreateDir:   getBoolEnv("CACHE_CREATE_DIR", true),
		DirMode:     getFileModeEnv("CACHE_DIR_MODE", 0o700),
		FileMode:    getFileModeEnv("CACHE_FILE_MODE", 0o600),
		BoltPath:    getEnv("CACHE_BOLT_PATH", "pocketcache.db"),
		DefaultTTL:  getDurationEnv("CACHE_TTL", 300*time.Second),
		Compress:    getBoolEnv("CACHE_COMPRESS", false),
		LogPath:     getEnv("LOG_PATH", "pocketcache.log"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal) * time.Second
		}
	}
	return defaultValue
}

// getFileModeEnv parses an octal permission string such as "0600"
func getFileModeEnv(key string, defaultValue os.FileMode) os.FileMode {
	if value := os.Getenv(key); value != "" {
		if modeVal, err := strconv.ParseUint(value, 8, 32); err == nil {
			return os.FileMode(modeVal)
		}
	}
	return defaultValue
}
