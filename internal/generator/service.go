// Package generator はAIによるマーケティングコンテンツ生成のビジネスロジックを提供する。
package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kosuke/adcraft/internal/metrics"
	"github.com/kosuke/adcraft/internal/model"
	"github.com/kosuke/adcraft/internal/repository"
	"github.com/kosuke/adcraft/internal/security"
)

// ServiceConfig は生成サービスの設定。
type ServiceConfig struct {
	// TextTimeout はテキスト生成呼び出しのタイムアウト。
	TextTimeout time.Duration
	// ImageTimeout は画像生成呼び出しのタイムアウト。テキストより長く取る。
	ImageTimeout time.Duration
	// HistoryLimit は履歴取得の最大件数。
	HistoryLimit int
}

// Service はコンテンツ生成・履歴・削除のビジネスロジックを提供する。
type Service struct {
	textGen     TextGenerator
	imageGen    ImageGenerator
	contentRepo repository.ContentRepository
	sanitizer   security.ContentSanitizerService
	collector   metrics.MetricsCollector
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	textGen TextGenerator,
	imageGen ImageGenerator,
	contentRepo repository.ContentRepository,
	sanitizer security.ContentSanitizerService,
	collector metrics.MetricsCollector,
	config ServiceConfig,
) *Service {
	return &Service{
		textGen:     textGen,
		imageGen:    imageGen,
		contentRepo: contentRepo,
		sanitizer:   sanitizer,
		collector:   collector,
		config:      config,
	}
}

// Generate はリクエストを検証し、テキスト（flyerの場合は画像も）を生成して永続化する。
// テキスト生成の失敗はリクエスト全体の失敗となるが、画像生成の失敗は
// 致命的ではなく、テキストのみのコンテンツとして保存する。
func (s *Service) Generate(ctx context.Context, userID string, req model.ContentRequest) (*model.GeneratedContent, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	start := time.Now()
	prompt := BuildPrompt(req)

	textCtx, cancel := context.WithTimeout(ctx, s.config.TextTimeout)
	defer cancel()

	text, err := s.textGen.GenerateText(textCtx, systemInstruction, prompt)
	if err != nil {
		slog.Error("text generation failed",
			slog.String("user_id", userID),
			slog.String("content_type", string(req.ContentType)),
			slog.String("error", err.Error()),
		)
		s.collector.RecordGenerationFailure(string(req.ContentType))
		return nil, model.NewGenerationError()
	}

	content := &model.GeneratedContent{
		ID:           uuid.New().String(),
		UserID:       userID,
		ContentType:  req.ContentType,
		BusinessName: req.BusinessName,
		TextContent:  s.sanitizer.Sanitize(text),
		PromptUsed:   prompt,
		CreatedAt:    time.Now(),
	}

	// チラシのみ画像を生成する。失敗してもテキストのみで続行する。
	if req.ContentType == model.ContentTypeFlyer {
		content.ImageBase64 = s.generateFlyerImage(ctx, userID, req)
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		s.collector.RecordGenerationFailure(string(req.ContentType))
		return nil, fmt.Errorf("failed to save generated content: %w", err)
	}

	s.collector.RecordGenerationSuccess(string(req.ContentType))
	s.collector.RecordGenerationLatency(time.Since(start))

	slog.Info("content generated",
		slog.String("user_id", userID),
		slog.String("content_id", content.ID),
		slog.String("content_type", string(req.ContentType)),
		slog.Bool("has_image", content.ImageBase64 != ""),
	)

	return content, nil
}

// generateFlyerImage はチラシ用画像を生成し、base64文字列を返す。
// 失敗時は警告ログとメトリクスを記録し、空文字列を返す。
func (s *Service) generateFlyerImage(ctx context.Context, userID string, req model.ContentRequest) string {
	imageCtx, cancel := context.WithTimeout(ctx, s.config.ImageTimeout)
	defer cancel()

	raw, err := s.imageGen.GenerateImage(imageCtx, BuildImagePrompt(req))
	if err != nil {
		slog.Warn("image generation failed, continuing with text only",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.collector.RecordImageFallback()
		return ""
	}

	return base64.StdEncoding.EncodeToString(raw)
}

// History はユーザーの生成履歴を新しい順に返す。
// 履歴が空の場合は空スライスを返す。
func (s *Service) History(ctx context.Context, userID string) ([]*model.GeneratedContent, error) {
	contents, err := s.contentRepo.ListByUserID(ctx, userID, s.config.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list content history: %w", err)
	}
	if contents == nil {
		contents = []*model.GeneratedContent{}
	}
	return contents, nil
}

// Delete は指定コンテンツを所有者検証付きで削除する。
// 存在しない場合も他ユーザーの所有の場合も、区別せずCONTENT_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.contentRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if !deleted {
		return model.NewContentNotFoundError(id)
	}

	slog.Info("content deleted",
		slog.String("user_id", userID),
		slog.String("content_id", id),
	)
	return nil
}

// validateRequest はリクエストの必須フィールドと列挙値を検証する。
// Toneが未指定の場合はprofessionalを補う。
func validateRequest(req *model.ContentRequest) error {
	var invalid []string

	if !req.ContentType.IsValid() {
		invalid = append(invalid, "content_type")
	}
	if req.BusinessName == "" {
		invalid = append(invalid, "business_name")
	}
	if req.BusinessType == "" {
		invalid = append(invalid, "business_type")
	}
	if req.TargetAudience == "" {
		invalid = append(invalid, "target_audience")
	}
	if req.KeyMessage == "" {
		invalid = append(invalid, "key_message")
	}
	if req.Tone == "" {
		req.Tone = model.ToneProfessional
	} else if !req.Tone.IsValid() {
		invalid = append(invalid, "tone")
	}

	if len(invalid) > 0 {
		return model.NewValidationError(invalid)
	}
	return nil
}
