package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	AppEnv   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr string

	ChangeFeedEnabled bool
	ChangeFeedChannel string

	NotificationRetrySchedule string
	PurgeSchedule             string
	PurgeRetention            time.Duration

	ClaimRateLimit float64
	ClaimRateBurst int
}

var loadDotEnv sync.Once

// LoadConfig reads the environment, after merging a .env file from the
// working directory if there is one. Variables already set win over .env.
func LoadConfig() (Config, error) {
	loadDotEnv.Do(func() { _ = godotenv.Load(".env") })

	var problems []error
	cfg := Config{
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		AppEnv:                    getEnv("APP_ENV", "development"),
		DBHost:                    getEnv("DB_HOST", ""),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "postgres"),
		DBPassword:                getEnv("DB_PASSWORD", ""),
		DBName:                    getEnv("DB_NAME", "supplyhub"),
		DBSslMode:                 getEnv("DB_SSLMODE", "disable"),
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		KafkaHost:                 getEnv("KAFKA_HOST", ""),
		KafkaOrderChangedTopic:    getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		RedisAddr:                 getEnv("REDIS_ADDR", ""),
		ChangeFeedChannel:         getEnv("CHANGE_FEED_CHANNEL", "order_changes"),
		NotificationRetrySchedule: getEnv("NOTIFICATION_RETRY_SCHEDULE", "*/5 * * * * *"),
		PurgeSchedule:             getEnv("PURGE_SCHEDULE", "0 0 3 * * *"),
	}

	var err error
	if cfg.ChangeFeedEnabled, err = strconv.ParseBool(getEnv("CHANGE_FEED_ENABLED", "true")); err != nil {
		problems = append(problems, fmt.Errorf("CHANGE_FEED_ENABLED: %w", err))
	}
	if cfg.PurgeRetention, err = time.ParseDuration(getEnv("PURGE_RETENTION", "0s")); err != nil {
		problems = append(problems, fmt.Errorf("PURGE_RETENTION: %w", err))
	}
	if cfg.ClaimRateLimit, err = strconv.ParseFloat(getEnv("CLAIM_RATE_LIMIT", "5"), 64); err != nil {
		problems = append(problems, fmt.Errorf("CLAIM_RATE_LIMIT: %w", err))
	}
	if cfg.ClaimRateBurst, err = strconv.Atoi(getEnv("CLAIM_RATE_BURST", "10")); err != nil {
		problems = append(problems, fmt.Errorf("CLAIM_RATE_BURST: %w", err))
	}

	if cfg.DBHost == "" {
		problems = append(problems, errors.New("DB_HOST is required"))
	}
	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the key/value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
