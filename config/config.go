package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	Env            string
	LogLevel       string
	DBUrl          string
	JWTSecret      string
	RedisAddr      string
	RedisPassword  string
	RedisChannel   string
	SendBuffer     int
	AllowedOrigins []string
	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

func LoadConfig() Config {
	err := godotenv.Load()

	return Config{
		Addr:           getEnv("ADDR", ":8080"),
		Env:            getEnv("APP_ENV", "production"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		DBUrl:          os.Getenv("DB_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisChannel:   getEnv("REDIS_CHANNEL", "battleship:events"),
		SendBuffer:     getEnvInt("SEND_BUFFER", 16),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		EnvFileLoaded:  err == nil,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
