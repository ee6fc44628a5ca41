package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	AllowOrigins       []string
	LogstashTCPAddr    string
	FrontendBaseURL    string
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SMTPFrom           string
	ReferralNotifyTo   string
	ElasticsearchURL   string
	ViewStatsLogIndex  string
	ViewStatsCacheTTL  time.Duration
	ViewStatsESTimeout time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cacheTTL := 15 * time.Minute
	if v, err := time.ParseDuration(getenv("VIEW_STATS_CACHE_TTL", "15m")); err == nil && v > 0 {
		cacheTTL = v
	}

	return Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        must("DATABASE_URL"),
		JWTSecret:          must("JWT_SECRET"),
		AllowOrigins:       splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:    getenv("LOGSTASH_TCP_ADDR", ""),
		FrontendBaseURL:    getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
		SMTPHost:           getenv("SMTP_HOST", ""),
		SMTPPort:           getenv("SMTP_PORT", ""),
		SMTPUsername:       getenv("SMTP_USERNAME", ""),
		SMTPPassword:       getenv("SMTP_PASSWORD", ""),
		SMTPFrom:           getenv("SMTP_FROM", ""),
		ReferralNotifyTo:   getenv("REFERRAL_NOTIFY_EMAIL", ""),
		ElasticsearchURL:   getenv("ELASTICSEARCH_URL", ""),
		ViewStatsLogIndex:  getenv("VIEW_STATS_LOG_INDEX", "nycbookings-requests"),
		ViewStatsCacheTTL:  cacheTTL,
		ViewStatsESTimeout: 10 * time.Second,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
