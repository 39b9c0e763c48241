package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// TextGenerator はテキストコンテンツ生成のインターフェース。
type TextGenerator interface {
	// GenerateText はシステム指示とプロンプトからテキストを生成する。
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// ImageGenerator は画像生成のインターフェース。
type ImageGenerator interface {
	// GenerateImage はプロンプトから画像を生成し、生バイト列を返す。
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GenAIClientConfig はGenAIClientの設定。
type GenAIClientConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// GenAIClient はGemini APIを利用したTextGenerator/ImageGeneratorの実装。
type GenAIClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGenAIClient はGemini APIクライアントを生成する。
func NewGenAIClient(ctx context.Context, config GenAIClientConfig) (*GenAIClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIClient{
		client:     client,
		textModel:  config.TextModel,
		imageModel: config.ImageModel,
	}, nil
}

// GenerateText はシステム指示とプロンプトからテキストを生成する。
func (c *GenAIClient) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("text generation request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty text generation response")
	}

	return text, nil
}

// GenerateImage はプロンプトから画像を生成し、生バイト列を返す。
func (c *GenAIClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.Models.GenerateImages(ctx, c.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("empty image generation response")
	}

	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// compile-time interface checks
var _ TextGenerator = (*GenAIClient)(nil)
var _ ImageGenerator = (*GenAIClient)(nil)
