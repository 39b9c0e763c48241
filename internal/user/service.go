// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kosuke/adcraft/internal/model"
	"github.com/kosuke/adcraft/internal/repository"
)

// ContentDeleter は生成コンテンツの一括削除インターフェース。
type ContentDeleter interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// Service はユーザー管理のサービス層。
// 退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	contentDeleter ContentDeleter
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	contentDeleter ContentDeleter,
) *Service {
	return &Service{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		contentDeleter: contentDeleter,
	}
}

// Withdraw はユーザーの退会処理を実行する。
// 削除順序: generated_content → sessions → user
// 生成コンテンツはユーザー所有のため、共有データは存在しない。
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	// ユーザー存在確認
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	slog.Info("退会処理を開始します",
		slog.String("user_id", userID),
	)

	// 1. 生成コンテンツを削除
	if s.contentDeleter != nil {
		if err := s.contentDeleter.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("生成コンテンツの削除に失敗しました: %w", err)
		}
	}

	// 2. セッションを削除
	if s.sessionRepo != nil {
		if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("セッションの削除に失敗しました: %w", err)
		}
	}

	// 3. ユーザーを削除
	if err := s.userRepo.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.String("user_id", userID),
	)

	return nil
}
