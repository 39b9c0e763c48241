// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// 外部IdPとのセッション交換で得られたメールアドレスをキーに初回ログイン時に作成される。
// 作成後に更新される項目は存在しない。
type User struct {
	ID        string
	Email     string
	Name      string
	Picture   string
	CreatedAt time.Time
}

// Session はユーザーのログインセッションを表す。
// Tokenが認証クレデンシャルそのものであり、HTTP Only Cookieで運搬される。
// 有効期限切れの判定は参照時に遅延評価される。
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
