package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	MigrationsPath  string
	SessionLifetime time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only set it behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	RedisURL string
	CacheTTL time.Duration

	ArchiveBucket string
	AWSRegion     string

	OAuth OAuth
}

type OAuth struct {
	DiscordKey         string
	DiscordSecret      string
	DiscordCallbackURL string
	GoogleKey          string
	GoogleSecret       string
	GoogleCallbackURL  string
}

// Load reads a .env file when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) Config {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	return Config{
		Addr:            env("ADDR", ":8080"),
		DatabaseURL:     env("DATABASE_URL", "cue_bracket.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"),
		MigrationsPath:  env("MIGRATIONS_PATH", "file://migrations"),
		SessionLifetime: duration(env("SESSION_LIFETIME", ""), 24*time.Hour),

		CORSOrigins:    list(env("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:   float(env("RATE_LIMIT_RPS", ""), 5),
		RateLimitBurst: integer(env("RATE_LIMIT_BURST", ""), 20),
		TrustProxy:     boolean(env("TRUST_PROXY", "")),

		RedisURL: env("REDIS_URL", ""),
		CacheTTL: duration(env("CACHE_TTL", ""), 10*time.Minute),

		ArchiveBucket: env("ARCHIVE_BUCKET", ""),
		AWSRegion:     env("AWS_REGION", "us-east-1"),

		OAuth: OAuth{
			DiscordKey:         getenv("DISCORD_KEY"),
			DiscordSecret:      getenv("DISCORD_SECRET"),
			DiscordCallbackURL: getenv("DISCORD_CALLBACK_URL"),
			GoogleKey:          getenv("GOOGLE_KEY"),
			GoogleSecret:       getenv("GOOGLE_SECRET"),
			GoogleCallbackURL:  getenv("GOOGLE_CALLBACK_URL"),
		},
	}
}

func duration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}

func float(s string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func integer(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil && i > 0 {
		return i
	}
	return fallback
}

func boolean(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func list(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
