// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"strings"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, content, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeUnauthorized            = "UNAUTHORIZED"
	ErrCodeContentNotFound         = "CONTENT_NOT_FOUND"
	ErrCodeAuthExchangeFailed      = "AUTH_EXCHANGE_FAILED"
	ErrCodeAuthProviderUnavailable = "AUTH_PROVIDER_UNAVAILABLE"
	ErrCodeGenerationFailed        = "GENERATION_FAILED"
	ErrCodeUserNotFound            = "USER_NOT_FOUND"
)

// NewValidationError はリクエスト検証エラーを生成する。
// fieldsには不正・未入力だったフィールド名を渡す。
func NewValidationError(fields []string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("リクエストの内容が不正です: %s", strings.Join(fields, ", ")),
		Category: "validation",
		Action:   "必須フィールドをすべて入力し、content_typeとtoneに定義済みの値を指定してください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewContentNotFoundError はコンテンツ未検出エラーを生成する。
// 他ユーザー所有のコンテンツも存在を秘匿するため同じエラーで返す。
func NewContentNotFoundError(contentID string) *APIError {
	return &APIError{
		Code:     ErrCodeContentNotFound,
		Message:  fmt.Sprintf("指定されたコンテンツが見つかりません: %s", contentID),
		Category: "content",
		Action:   "コンテンツIDを確認してください。",
	}
}

// NewAuthExchangeError はIdPとのセッション交換失敗エラーを生成する。
func NewAuthExchangeError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthExchangeFailed,
		Message:  "認証プロバイダーとのセッション交換に失敗しました。",
		Category: "auth",
		Action:   "再度ログインをやり直してください。",
	}
}

// NewAuthProviderUnavailableError はIdPに到達できない場合のエラーを生成する。
// コードの拒否（AUTH_EXCHANGE_FAILED）とは区別し、上流障害として扱う。
func NewAuthProviderUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthProviderUnavailable,
		Message:  "認証プロバイダーに接続できません。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewGenerationError はコンテンツ生成プロバイダーの失敗エラーを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewGenerationError() *APIError {
	return &APIError{
		Code:     ErrCodeGenerationFailed,
		Message:  "コンテンツの生成に失敗しました。",
		Category: "content",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
