package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Auth（外部IdPのセッション交換エンドポイント）
	AuthSessionURL string
	AuthTimeout    time.Duration

	// Session
	SessionMaxAge int // セッション有効期間（秒）。デフォルト7日。

	// Generation
	GeminiAPIKey   string
	TextModel      string
	ImageModel     string
	TextTimeout    time.Duration // テキスト生成呼び出しのタイムアウト
	ImageTimeout   time.Duration // 画像生成呼び出しのタイムアウト（テキストより長い）
	HistoryLimit   int           // 履歴一覧の最大取得件数

	// Rate Limit
	RateLimitGeneral  int // API全般（req/min/user）
	RateLimitGenerate int // コンテンツ生成（req/min/user）

	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.AuthSessionURL = os.Getenv("AUTH_SESSION_URL")
	if cfg.AuthSessionURL == "" {
		missing = append(missing, "AUTH_SESSION_URL")
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.AuthTimeout = getEnvDuration("AUTH_TIMEOUT", 10*time.Second)
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 604800) // 7日
	cfg.TextModel = getEnvString("TEXT_MODEL", "gemini-2.0-flash")
	cfg.ImageModel = getEnvString("IMAGE_MODEL", "imagen-3.0-generate-002")
	cfg.TextTimeout = getEnvDuration("TEXT_TIMEOUT", 30*time.Second)
	cfg.ImageTimeout = getEnvDuration("IMAGE_TIMEOUT", 2*time.Minute)
	cfg.HistoryLimit = getEnvInt("HISTORY_LIMIT", 50)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitGenerate = getEnvInt("RATE_LIMIT_GENERATE", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
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
