package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// sessionIDHeader はワンタイムコードをIdPに渡す際のヘッダー名。
const sessionIDHeader = "X-Session-ID"

// ErrProviderUnavailable はIdPに到達できなかったことを示す。
// コードが拒否された場合（ステータス非200）とは区別される。
var ErrProviderUnavailable = errors.New("identity provider unavailable")

// HTTPIdentityProviderConfig はHTTPIdentityProviderの設定。
type HTTPIdentityProviderConfig struct {
	// SessionDataURL はIdPのセッション交換エンドポイント。
	SessionDataURL string
	// Timeout は交換リクエストのタイムアウト。
	Timeout time.Duration
}

// HTTPIdentityProvider はマネージド認証サービスのセッション交換エンドポイントを
// 呼び出すIdentityProviderの実装。
type HTTPIdentityProvider struct {
	config     HTTPIdentityProviderConfig
	httpClient *http.Client
}

// NewHTTPIdentityProvider はHTTPIdentityProviderを生成する。
func NewHTTPIdentityProvider(config HTTPIdentityProviderConfig) *HTTPIdentityProvider {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPIdentityProvider{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// sessionDataResponse はIdPのセッション交換エンドポイントのレスポンス。
type sessionDataResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ExchangeCode はワンタイムコードをIdPで検証し、ユーザー情報を取得する。
// コードはX-Session-IDヘッダーで送信する。
func (p *HTTPIdentityProvider) ExchangeCode(ctx context.Context, code string) (*IdentityInfo, error) {
	if code == "" {
		return nil, fmt.Errorf("empty one-time code")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.SessionDataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session data request: %w", err)
	}
	req.Header.Set(sessionIDHeader, code)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read session data response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("session exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var data sessionDataResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse session data response: %w", err)
	}

	if data.Email == "" {
		return nil, fmt.Errorf("empty email in session data response")
	}

	return &IdentityInfo{
		Email:   data.Email,
		Name:    data.Name,
		Picture: data.Picture,
	}, nil
}

// compile-time interface check
var _ IdentityProvider = (*HTTPIdentityProvider)(nil)
