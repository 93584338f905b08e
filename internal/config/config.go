package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings that affect listing behavior. PostsPerPage drives every
// paginated listing identically; IndexCacheTTL bounds the staleness of
// the cached global listing.
var (
	PostsPerPage  = 10
	IndexCacheTTL = 20 * time.Second
)

// LoadEnv reads .env (if present) and applies recognized options.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment")
	}
	if v, err := strconv.Atoi(os.Getenv("POSTS_PER_PAGE")); err == nil && v > 0 {
		PostsPerPage = v
	}
	if v, err := time.ParseDuration(os.Getenv("INDEX_CACHE_TTL")); err == nil && v > 0 {
		IndexCacheTTL = v
	}
}

// GetEnv returns the value of key, falling back to def when unset.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func MySQLDSN() string {
	return GetEnv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/yatube?charset=utf8mb4&parseTime=True")
}

func RedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

func RedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func RedisDB() int {
	n, _ := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	return n
}

func KafkaBrokers() string {
	return GetEnv("KAFKA_BROKERS", "")
}

func KafkaTopic() string {
	return GetEnv("KAFKA_TOPIC", "yatube.follow-events")
}
