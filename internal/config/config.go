package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	SchedulerURL       string
	SchedulerPath      string
	SchedulerTimeout   time.Duration
	PostgresDSN        string
	Timezone           string
	LogLevel           string
	LogFormat          string
	RateLimitPerMinute int
	CORSOrigins        []string
}

func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		SchedulerURL:       getEnv("SCHEDULER_URL", "http://localhost:8000"),
		SchedulerPath:      getEnv("SCHEDULER_PATH", "/schedule-sms"),
		SchedulerTimeout:   getDuration("SCHEDULER_TIMEOUT", 0),
		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		Timezone:           getEnv("TIMEZONE", "Local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSOrigins:        getList("CORS_ORIGINS", []string{"*"}),
	}
}

// Location resolves Timezone. An unknown zone yields time.Local and the
// lookup error so the caller can warn about it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, err
	}
	return loc, nil
}

func (c *Config) JournalEnabled() bool {
	return c.PostgresDSN != ""
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultVal
}

func getList(key string, defaultVal []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
