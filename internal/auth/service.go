// Package auth は外部IdPとのセッション交換、セッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kosuke/adcraft/internal/model"
	"github.com/kosuke/adcraft/internal/repository"
)

// IdentityInfo はIdPから取得した検証済みユーザー情報を表す。
type IdentityInfo struct {
	Email   string
	Name    string
	Picture string
}

// IdentityProvider は外部マネージド認証プロバイダーのインターフェース。
// ワンタイムコードを検証済みユーザー情報に交換する。
type IdentityProvider interface {
	// ExchangeCode はワンタイムコードをIdPで検証し、ユーザー情報を取得する。
	ExchangeCode(ctx context.Context, code string) (*IdentityInfo, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service はセッション認証に関するビジネスロジックを提供する。
type Service struct {
	provider    IdentityProvider
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	provider IdentityProvider,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		provider:    provider,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// CreateSession はワンタイムコードをIdPで交換し、セッションを発行する。
// 未登録メールアドレスの場合はユーザーを自動作成する。
// IdPがコードを拒否した場合はAUTH_EXCHANGE_FAILED、到達不能な場合は
// AUTH_PROVIDER_UNAVAILABLEを返し、セッションは一切作成されない。
func (s *Service) CreateSession(ctx context.Context, code string) (*model.Session, *model.User, error) {
	// 1. ワンタイムコードをIdPで検証し、ユーザー情報を取得
	info, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		slog.Warn("identity exchange failed", slog.String("error", err.Error()))
		if errors.Is(err, ErrProviderUnavailable) {
			return nil, nil, model.NewAuthProviderUnavailableError()
		}
		return nil, nil, model.NewAuthExchangeError()
	}

	// 2. メールアドレスで既存ユーザーを検索
	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user == nil {
		// 3. 新規ユーザーを作成
		user = &model.User{
			ID:        uuid.New().String(),
			Email:     info.Email,
			Name:      info.Name,
			Picture:   info.Picture,
			CreatedAt: time.Now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("new user created",
			slog.String("user_id", user.ID),
			slog.String("email", user.Email),
		)
	} else {
		slog.Info("existing user logged in", slog.String("user_id", user.ID))
	}

	// 4. セッションを発行
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, user, nil
}

// UserByID はユーザーIDからユーザー情報を取得する。
// セッション検証済みリクエストのプロフィール表示に使用する。
func (s *Service) UserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}

// Logout はセッションをサーバー側で破棄する。
// Cookieのクリアだけに頼らず、トークンテーブルからも確実に失効させる。
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("session token is required")
	}

	if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out")
	return nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionToken は暗号的に安全なセッショントークンを生成する。
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
