package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kosuke/adcraft/internal/model"
)

// PostgresContentRepo はPostgreSQLを使用した生成済みコンテンツリポジトリ。
type PostgresContentRepo struct {
	db *sql.DB
}

// NewPostgresContentRepo はPostgresContentRepoを生成する。
func NewPostgresContentRepo(db *sql.DB) *PostgresContentRepo {
	return &PostgresContentRepo{db: db}
}

// Create は生成済みコンテンツを作成する。
func (r *PostgresContentRepo) Create(ctx context.Context, content *model.GeneratedContent) error {
	// image_base64は未設定時にNULLとして保存する
	var image sql.NullString
	if content.ImageBase64 != "" {
		image = sql.NullString{String: content.ImageBase64, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generated_content (id, user_id, content_type, business_name, text_content, image_base64, prompt_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		content.ID, content.UserID, string(content.ContentType), content.BusinessName,
		content.TextContent, image, content.PromptUsed, content.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert generated content: %w", err)
	}
	return nil
}

// FindByID は指定IDのコンテンツを取得する。見つからない場合はnilを返す。
func (r *PostgresContentRepo) FindByID(ctx context.Context, id string) (*model.GeneratedContent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content_type, business_name, text_content, image_base64, prompt_used, created_at
		 FROM generated_content
		 WHERE id = $1`,
		id,
	)

	content, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find generated content: %w", err)
	}

	return content, nil
}

// ListByUserID はユーザー所有のコンテンツをcreated_at降順で最大limit件返す。
func (r *PostgresContentRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]*model.GeneratedContent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content_type, business_name, text_content, image_base64, prompt_used, created_at
		 FROM generated_content
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated content: %w", err)
	}
	defer rows.Close()

	var contents []*model.GeneratedContent
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generated content: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generated content: %w", err)
	}

	return contents, nil
}

// DeleteOwned は指定IDのコンテンツを所有者が一致する場合のみ削除する。
// 存在しない場合と所有者不一致の場合はどちらもfalseを返す。
func (r *PostgresContentRepo) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM generated_content WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete generated content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteByUserID はユーザー所有の全コンテンツを削除する。
func (r *PostgresContentRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM generated_content WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user generated content: %w", err)
	}
	return nil
}

// rowScanner は*sql.Rowと*sql.Rowsの共通スキャンインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanContent は1行分のgenerated_contentレコードをスキャンする。
func scanContent(row rowScanner) (*model.GeneratedContent, error) {
	content := &model.GeneratedContent{}
	var contentType string
	var image sql.NullString

	err := row.Scan(
		&content.ID, &content.UserID, &contentType, &content.BusinessName,
		&content.TextContent, &image, &content.PromptUsed, &content.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	content.ContentType = model.ContentType(contentType)
	if image.Valid {
		content.ImageBase64 = image.String
	}

	return content, nil
}

// compile-time interface check
var _ ContentRepository = (*PostgresContentRepo)(nil)
