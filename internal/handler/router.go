package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kosuke/adcraft/internal/metrics"
	"github.com/kosuke/adcraft/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// welcomeMessage はAPIルートエンドポイントの応答メッセージ。
const welcomeMessage = "AI Content & Marketing Studio API"

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig
	Logger            *slog.Logger
	Collector         metrics.MetricsCollector

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// コンテンツ生成
	ContentService ContentServiceInterface

	// ユーザー
	UserService UserServiceInterface

	// ヘルスチェック
	HealthChecker HealthChecker

	// Prometheusスクレイプ（nilの場合はマウントしない）
	MetricsGatherer prometheus.Gatherer

	// 静的フロントエンド（nilの場合はマウントしない）
	StaticHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → CSRF
//	→（認証グループのみ）Session → RateLimit(General)
//
// セッション交換（POST /api/auth/session）とヘルスチェックは認証グループの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger, deps.Collector))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.Collector)
	contentHandler := NewContentHandler(deps.ContentService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"message": welcomeMessage,
			})
		})

		r.Method(http.MethodGet, "/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

		// セッション交換（Cookie発行前なのでセッション検証の外）
		r.Post("/auth/session", authHandler.CreateSession)

		// --- 認証が必要なルート ---
		// ミドルウェアスタック: Session → RateLimit(General)
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
			r.Use(deps.RateLimiter.GeneralMiddleware())

			// セッション管理
			r.Get("/auth/profile", authHandler.Profile)
			r.Post("/auth/logout", authHandler.Logout)

			// コンテンツ生成（生成専用レート制限を追加）
			r.With(deps.RateLimiter.GenerateMiddleware()).Post("/content/generate", contentHandler.Generate)
			r.Get("/content/history", contentHandler.History)
			r.Delete("/content/{id}", contentHandler.Delete)

			// ユーザー管理
			r.Delete("/users/me", userHandler.Withdraw)
		})
	})

	// 静的フロントエンド
	if deps.StaticHandler != nil {
		r.Handle("/*", deps.StaticHandler)
	}

	return r
}
