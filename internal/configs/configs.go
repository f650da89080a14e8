package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	CleanupBackend         string
	CleanupQueueKey        string
	CleanupDelaySeconds    int
	RateLimit              int
	AuthHeader             string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		CleanupBackend:         getEnv("CLEANUP_BACKEND", "redis"),
		CleanupQueueKey:        getEnv("CLEANUP_QUEUE_KEY", "task_cleanup_jobs"),
		CleanupDelaySeconds:    getEnvAsInt("CLEANUP_DELAY_SECONDS", 1),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		AuthHeader:             getEnv("AUTH_USER_HEADER", "X-User-Id"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.CleanupBackend != "redis" && cfg.CleanupBackend != "memory" {
		log.Fatal("CLEANUP_BACKEND must be redis or memory")
	}
	if cfg.CleanupDelaySeconds <= 0 {
		log.Fatal("CLEANUP_DELAY_SECONDS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
