package generator

import (
	"fmt"

	"github.com/kosuke/adcraft/internal/model"
)

// systemInstruction は全コンテンツ生成に共通するシステム指示。
const systemInstruction = "You are an expert marketing copywriter specializing in content for small and medium enterprises (SMEs). Create professional, engaging, and effective marketing content that drives results for local businesses."

// BuildPrompt はコンテンツ種別に応じた生成プロンプトを構築する。
// 未知の種別にはソーシャル投稿のテンプレートを使用する。
func BuildPrompt(req model.ContentRequest) string {
	details := req.AdditionalDetails
	if details == "" {
		details = "None"
	}

	switch req.ContentType {
	case model.ContentTypeFlyer:
		return fmt.Sprintf(`Create compelling flyer content for %s, a %s business.
Target audience: %s
Key message: %s
Tone: %s
Additional details: %s

Requirements:
- Eye-catching headline
- Clear value proposition
- Contact information placeholder
- Call-to-action
- Benefits or features (3-5 bullet points)
- Event details if applicable

Format as structured flyer text with clear sections for headline, body, and contact info.`,
			req.BusinessName, req.BusinessType, req.TargetAudience, req.KeyMessage, req.Tone, details)

	case model.ContentTypeRadioScript:
		return fmt.Sprintf(`Write a radio advertisement script for %s, a %s business.
Target audience: %s
Key message: %s
Tone: %s
Additional details: %s

Requirements:
- 30-second format (approximately 75 words)
- Attention-grabbing opening
- Clear message delivery
- Strong call-to-action
- Easy to pronounce and remember
- Include timing cues in brackets

Format as a professional radio script with speaker directions.`,
			req.BusinessName, req.BusinessType, req.TargetAudience, req.KeyMessage, req.Tone, details)

	case model.ContentTypeMarketingPlan:
		return fmt.Sprintf(`Create a comprehensive marketing plan for %s, a %s business.
Target audience: %s
Key message: %s
Tone: %s
Additional details: %s

Requirements:
- Executive Summary
- Target Market Analysis
- Marketing Objectives (3-5)
- Marketing Strategies and Tactics
- Budget Considerations
- Timeline (3-6 months)
- Success Metrics
- Next Steps

Format as a structured business document with clear sections and actionable recommendations.`,
			req.BusinessName, req.BusinessType, req.TargetAudience, req.KeyMessage, req.Tone, details)

	default:
		return fmt.Sprintf(`Create an engaging social media post for %s, a %s business.
Target audience: %s
Key message: %s
Tone: %s
Additional details: %s

Requirements:
- Maximum 280 characters for Twitter or 125 words for Facebook/LinkedIn
- Include relevant hashtags (3-5)
- Call-to-action
- Engaging and shareable content
- Appropriate emojis if tone allows

Format the response as a ready-to-post social media update.`,
			req.BusinessName, req.BusinessType, req.TargetAudience, req.KeyMessage, req.Tone, details)
	}
}

// BuildImagePrompt はチラシ用画像の生成プロンプトを構築する。
func BuildImagePrompt(req model.ContentRequest) string {
	description := fmt.Sprintf(
		"Create a professional flyer background for %s, %s. Target audience: %s. Message: %s",
		req.BusinessName, req.BusinessType, req.TargetAudience, req.KeyMessage,
	)

	return fmt.Sprintf(`Professional marketing image for %s, a %s business.
%s
Style: Modern, clean, professional marketing material
Quality: High-resolution, suitable for digital marketing
Colors: Vibrant but professional, good contrast
Layout: Suitable for flyers or social media posts
Text space: Leave room for text overlay
Brand-appropriate imagery that appeals to the target demographic`,
		req.BusinessName, req.BusinessType, description)
}
