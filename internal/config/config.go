package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisAddr     string
	RedisPassword string

	NATSURL string

	// Matchmaking windows. Fixed per process, overridable for ops only.
	BotPromotionWindow time.Duration
	ReconnectGrace     time.Duration
	BotThinkDelay      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Port: GetEnv("PORT", "4000"),

		DatabaseURL:          GetEnv("DATABASE_URL", ""),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisAddr:     GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		NATSURL: GetEnv("NATS_URL", "nats://localhost:4222"),

		BotPromotionWindow: time.Duration(GetEnvAsInt("BOT_PROMOTION_SECONDS", 10)) * time.Second,
		ReconnectGrace:     time.Duration(GetEnvAsInt("RECONNECT_GRACE_SECONDS", 30)) * time.Second,
		BotThinkDelay:      time.Duration(GetEnvAsInt("BOT_THINK_DELAY_MS", 500)) * time.Millisecond,
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
