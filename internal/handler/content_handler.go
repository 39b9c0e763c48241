package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kosuke/adcraft/internal/middleware"
	"github.com/kosuke/adcraft/internal/model"
)

// ContentServiceInterface はコンテンツハンドラーが必要とするサービスインターフェース。
type ContentServiceInterface interface {
	// Generate はリクエストを検証し、コンテンツを生成して永続化する。
	Generate(ctx context.Context, userID string, req model.ContentRequest) (*model.GeneratedContent, error)
	// History はユーザーの生成履歴を新しい順に返す。
	History(ctx context.Context, userID string) ([]*model.GeneratedContent, error)
	// Delete は指定コンテンツを所有者検証付きで削除する。
	Delete(ctx context.Context, id, userID string) error
}

// ContentHandler はコンテンツ生成関連のHTTPハンドラー。
type ContentHandler struct {
	service ContentServiceInterface
}

// NewContentHandler はContentHandlerを生成する。
func NewContentHandler(service ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		service: service,
	}
}

// contentResponse は生成コンテンツのJSONフォーマット。
type contentResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ContentType  string    `json:"content_type"`
	BusinessName string    `json:"business_name"`
	TextContent  string    `json:"text_content"`
	ImageBase64  string    `json:"image_base64,omitempty"`
	PromptUsed   string    `json:"prompt_used"`
	CreatedAt    time.Time `json:"created_at"`
}

func toContentResponse(content *model.GeneratedContent) contentResponse {
	return contentResponse{
		ID:           content.ID,
		UserID:       content.UserID,
		ContentType:  string(content.ContentType),
		BusinessName: content.BusinessName,
		TextContent:  content.TextContent,
		ImageBase64:  content.ImageBase64,
		PromptUsed:   content.PromptUsed,
		CreatedAt:    content.CreatedAt,
	}
}

// Generate はマーケティングコンテンツを生成する。
// POST /api/content/generate
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req model.ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusUnprocessableEntity, model.NewValidationError([]string{"body"}))
		return
	}

	content, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toContentResponse(content))
}

// History はユーザーの生成履歴を返す。
// GET /api/content/history
func (h *ContentHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	contents, err := h.service.History(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]contentResponse, 0, len(contents))
	for _, content := range contents {
		responses = append(responses, toContentResponse(content))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// Delete は指定コンテンツを削除する。
// DELETE /api/content/{id}
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	contentID := chi.URLParam(r, "id")
	if contentID == "" {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewContentNotFoundError(contentID))
		return
	}

	if err := h.service.Delete(r.Context(), contentID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Content deleted successfully",
	})
}
