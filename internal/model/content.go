package model

import "time"

// ContentType は生成するマーケティングコンテンツの種別を表す。
type ContentType string

const (
	ContentTypeSocialPost    ContentType = "social_post"
	ContentTypeFlyer         ContentType = "flyer"
	ContentTypeRadioScript   ContentType = "radio_script"
	ContentTypeMarketingPlan ContentType = "marketing_plan"
)

// IsValid はコンテンツ種別が定義済みのいずれかであるかを判定する。
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeSocialPost, ContentTypeFlyer, ContentTypeRadioScript, ContentTypeMarketingPlan:
		return true
	default:
		return false
	}
}

// Tone は生成コンテンツの文体を表す。
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneExciting     Tone = "exciting"
	ToneFriendly     Tone = "friendly"
)

// IsValid は文体が定義済みのいずれかであるかを判定する。
func (t Tone) IsValid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneExciting, ToneFriendly:
		return true
	default:
		return false
	}
}

// ContentRequest はコンテンツ生成リクエストを表す。
// AdditionalDetails以外の全フィールドが必須。単体では永続化されない。
type ContentRequest struct {
	ContentType       ContentType `json:"content_type"`
	BusinessName      string      `json:"business_name"`
	BusinessType      string      `json:"business_type"`
	TargetAudience    string      `json:"target_audience"`
	KeyMessage        string      `json:"key_message"`
	Tone              Tone        `json:"tone"`
	AdditionalDetails string      `json:"additional_details,omitempty"`
}

// GeneratedContent は生成済みマーケティングコンテンツを表す。
// リクエストしたユーザーが排他的に所有し、作成後は不変。
// ImageBase64はcontent_typeがflyerかつ画像生成に成功した場合のみ設定される。
type GeneratedContent struct {
	ID           string
	UserID       string
	ContentType  ContentType
	BusinessName string
	TextContent  string
	ImageBase64  string
	PromptUsed   string
	CreatedAt    time.Time
}
