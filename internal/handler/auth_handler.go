// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kosuke/adcraft/internal/middleware"
	"github.com/kosuke/adcraft/internal/model"
)

// sessionIDHeader はフロントエンドからワンタイムコードを受け取るヘッダー名。
const sessionIDHeader = "X-Session-ID"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// CreateSession はワンタイムコードをIdPで交換し、セッションを発行する。
	CreateSession(ctx context.Context, code string) (*model.Session, *model.User, error)
	// UserByID はユーザーIDからユーザー情報を取得する。
	UserByID(ctx context.Context, userID string) (*model.User, error)
	// Logout はセッションをサーバー側で破棄する。
	Logout(ctx context.Context, token string) error
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はセッション認証関連のHTTPハンドラー。
type AuthHandler struct {
	service   AuthServiceInterface
	config    AuthHandlerConfig
	collector sessionCreatedRecorder
}

// sessionCreatedRecorder はセッション発行メトリクスの記録に必要なインターフェース。
type sessionCreatedRecorder interface {
	RecordSessionCreated()
}

// NewAuthHandler はAuthHandlerを生成する。
// collectorはnilでもよい（メトリクス記録をスキップする）。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, collector sessionCreatedRecorder) *AuthHandler {
	return &AuthHandler{
		service:   service,
		config:    config,
		collector: collector,
	}
}

// userResponse はセッション発行レスポンスに含めるユーザー情報のJSONフォーマット。
type userResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// profileResponse はプロフィール取得のJSONフォーマット。作成日時を含む完全なユーザー情報。
type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSession はワンタイムコードをセッションに交換する。
// POST /api/auth/session（コードはX-Session-IDヘッダーで受け取る）
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	code := r.Header.Get(sessionIDHeader)
	if code == "" {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewAuthExchangeError())
		return
	}

	session, user, err := h.service.CreateSession(r.Context(), code)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordSessionCreated()
	}

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName(),
		Value:    session.Token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]userResponse{
		"user": {
			ID:      user.ID,
			Email:   user.Email,
			Name:    user.Name,
			Picture: user.Picture,
		},
	})
}

// Profile は現在のログインユーザー情報を返す。
// セッション検証はミドルウェアで済んでいるため、コンテキストのユーザーIDから引く。
// GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	user, err := h.service.UserByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
		CreatedAt: user.CreatedAt,
	})
}

// Logout はセッションを破棄する。
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionTokenFromRequest(r)
	if token != "" {
		// セッションをDBから削除
		if err := h.service.Logout(r.Context(), token); err != nil {
			slog.Error("failed to logout", slog.String("error", err.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	// セッションCookieをクリア
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName(),
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Logged out successfully",
	})
}
