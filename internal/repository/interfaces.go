// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/kosuke/adcraft/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するsessions、generated_contentはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByToken は指定トークンのセッションを取得する。期限切れの場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteByToken は指定トークンのセッションを削除する。
	DeleteByToken(ctx context.Context, token string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// ContentRepository は生成済みコンテンツの永続化インターフェース。
type ContentRepository interface {
	// Create は生成済みコンテンツを作成する。IDは一意でなければならない。
	Create(ctx context.Context, content *model.GeneratedContent) error

	// FindByID は指定IDのコンテンツを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.GeneratedContent, error)

	// ListByUserID はユーザー所有のコンテンツをcreated_at降順で最大limit件返す。
	ListByUserID(ctx context.Context, userID string, limit int) ([]*model.GeneratedContent, error)

	// DeleteOwned は指定IDのコンテンツを所有者が一致する場合のみ削除する。
	// 削除した場合はtrueを返す。存在しない・所有者不一致はどちらもfalseを返し、
	// 呼び出し元では区別しない（他ユーザーのデータの存在を漏らさないため）。
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)

	// DeleteByUserID はユーザー所有の全コンテンツを削除する。退会処理で使用する。
	DeleteByUserID(ctx context.Context, userID string) error
}
