package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config はサーバーとスクレイパーの設定です
type Config struct {
	Port      string
	APISecret string

	EbayBaseURL      string
	RequestTimeout   time.Duration
	ProxyURL         string
	ProxyUser        string
	ProxyPassword    string
	MaxRetries       int
	RetryDelay       time.Duration
	HeadlessFallback bool
	ChromeBin        string
}

// ErrAPISecretMissing は API_SECRET が設定されていない場合のエラーです
var ErrAPISecretMissing = errors.New("API_SECRET is not set")

// Load は .env ファイル（存在すれば）と環境変数から設定を読み込みます
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", slog.Any("err", err))
	}

	c := &Config{
		Port:      getEnv("PORT", "4000"),
		APISecret: getEnv("API_SECRET", ""),

		EbayBaseURL:      strings.TrimRight(getEnv("EBAY_BASE_URL", "https://www.ebay.com"), "/"),
		RequestTimeout:   time.Duration(getInt("REQUEST_TIMEOUT_MS", 20000)) * time.Millisecond,
		ProxyURL:         getEnv("SCRAPE_PROXY_URL", ""),
		ProxyUser:        getEnv("SCRAPE_PROXY_USER", ""),
		ProxyPassword:    getEnv("SCRAPE_PROXY_PASS", ""),
		MaxRetries:       getInt("SCRAPE_MAX_RETRIES", 3),
		RetryDelay:       getDuration("SCRAPE_RETRY_DELAY", "1s"),
		HeadlessFallback: getBool("SCRAPE_HEADLESS_FALLBACK", false),
		ChromeBin:        getEnv("CHROME_BIN", ""),
	}

	if c.APISecret == "" {
		return nil, ErrAPISecretMissing
	}
	if c.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_MS must be positive")
	}
	if c.MaxRetries <= 0 {
		return nil, fmt.Errorf("SCRAPE_MAX_RETRIES must be positive")
	}
	if c.RetryDelay < 0 {
		return nil, fmt.Errorf("SCRAPE_RETRY_DELAY cannot be negative")
	}

	return c, nil
}

// Addr はHTTPサーバーの待ち受けアドレスを返します
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, fallback)); err == nil {
		return d
	}
	d, err := time.ParseDuration(fallback)
	if err != nil {
		panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, err))
	}
	return d
}
