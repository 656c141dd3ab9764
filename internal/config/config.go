package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string

	// Fetch
	FetchTimeout time.Duration
	FetchMaxSize int64

	// Inspect
	InspectMaxBody int64

	// Rate Limit
	RateLimitPerMinute int

	// Lint
	LintFeeds         []string
	LintInterval      time.Duration
	LintMaxConcurrent int

	// Logging
	LogLevel slog.Level
}

// Load は環境変数からConfigを読み込む。
// 値の形式が不正な場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchMaxSize = getEnvInt64("FETCH_MAX_SIZE", 5242880)
	cfg.InspectMaxBody = getEnvInt64("INSPECT_MAX_BODY", 5242880)
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 60)
	cfg.LintFeeds = getEnvList("LINT_FEEDS")
	cfg.LintInterval = getEnvDuration("LINT_INTERVAL", 15*time.Minute)
	cfg.LintMaxConcurrent = getEnvInt("LINT_MAX_CONCURRENT", 4)

	level, err := parseLogLevel(getEnvString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	var invalid []string
	if cfg.FetchTimeout <= 0 {
		invalid = append(invalid, "FETCH_TIMEOUT")
	}
	if cfg.FetchMaxSize <= 0 {
		invalid = append(invalid, "FETCH_MAX_SIZE")
	}
	if cfg.InspectMaxBody <= 0 {
		invalid = append(invalid, "INSPECT_MAX_BODY")
	}
	if cfg.RateLimitPerMinute <= 0 {
		invalid = append(invalid, "RATE_LIMIT_PER_MINUTE")
	}
	if cfg.LintInterval <= 0 {
		invalid = append(invalid, "LINT_INTERVAL")
	}
	if cfg.LintMaxConcurrent <= 0 {
		invalid = append(invalid, "LINT_MAX_CONCURRENT")
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("environment variables must be positive: %v", invalid)
	}

	return cfg, nil
}

// ValidateLint はlintコマンドに必要な設定が揃っているかを検証する。
func (c *Config) ValidateLint() error {
	if len(c.LintFeeds) == 0 {
		return errors.New("required environment variables are not set: [LINT_FEEDS]")
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getEnvList はカンマ区切りの値を空要素を除いて返す。
func getEnvList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
