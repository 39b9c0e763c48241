// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService は生成AIが返したマーケティングコンテンツを
// サニタイズし、XSS攻撃などのセキュリティリスクからユーザーを保護する。
// 生成コンテンツはプレーンテキストとして扱うため、bluemondayの
// StrictPolicyで全てのHTMLタグを除去する。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は生成コンテンツのサニタイズ機能のインターフェースを定義する。
// 生成コンテンツの保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize は生成されたテキストから全てのHTMLタグを除去して返す。
	// script, iframe等のタグだけでなく、あらゆるマークアップを除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 生成コンテンツはマークダウン風のプレーンテキストであり、HTMLを含む正当な
// 理由がないため、StrictPolicy（全タグ除去）を採用する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は生成されたテキストから全てのHTMLタグを除去して返す。
// StrictPolicyはタグ除去後にエンティティエンコードするため、
// プレーンテキストとして扱えるようデコードして返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	return html.UnescapeString(s.policy.Sanitize(raw))
}
