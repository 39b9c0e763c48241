package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kosuke/adcraft/internal/model"
	"github.com/kosuke/adcraft/internal/repository"
)

// --- モック定義 ---

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) DeleteByID(_ context.Context, _ string) error {
	return nil
}

type mockSessionRepo struct {
	createFn         func(ctx context.Context, session *model.Session) error
	findByTokenFn    func(ctx context.Context, token string) (*model.Session, error)
	deleteByTokenFn  func(ctx context.Context, token string) error
	deleteByUserIDFn func(ctx context.Context, userID string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	if m.findByTokenFn != nil {
		return m.findByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	if m.deleteByTokenFn != nil {
		return m.deleteByTokenFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

type mockIdentityProvider struct {
	exchangeCodeFn func(ctx context.Context, code string) (*IdentityInfo, error)
}

func (m *mockIdentityProvider) ExchangeCode(ctx context.Context, code string) (*IdentityInfo, error) {
	if m.exchangeCodeFn != nil {
		return m.exchangeCodeFn(ctx, code)
	}
	return nil, nil
}

// --- compile-time interface checks ---
var _ repository.UserRepository = (*mockUserRepo)(nil)
var _ repository.SessionRepository = (*mockSessionRepo)(nil)
var _ IdentityProvider = (*mockIdentityProvider)(nil)

// --- テスト ---

func TestCreateSession_NewUser_CreatesUserAndSession(t *testing.T) {
	var createdUser *model.User
	var createdSession *model.Session

	provider := &mockIdentityProvider{
		exchangeCodeFn: func(_ context.Context, code string) (*IdentityInfo, error) {
			if code != "valid-code" {
				t.Errorf("ExchangeCode code = %q, want %q", code, "valid-code")
			}
			return &IdentityInfo{Email: "mike@example.com", Name: "Mike", Picture: "https://example.com/p.png"}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, nil // 未登録
		},
		createFn: func(_ context.Context, user *model.User) error {
			createdUser = user
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		createFn: func(_ context.Context, session *model.Session) error {
			createdSession = session
			return nil
		},
	}

	svc := NewService(provider, userRepo, sessionRepo, ServiceConfig{SessionMaxAge: 604800})

	session, user, err := svc.CreateSession(context.Background(), "valid-code")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if createdUser == nil {
		t.Fatal("expected user to be created")
	}
	if createdUser.Email != "mike@example.com" {
		t.Errorf("created user email = %q, want %q", createdUser.Email, "mike@example.com")
	}
	if createdUser.ID == "" {
		t.Error("created user should have a generated ID")
	}

	if createdSession == nil {
		t.Fatal("expected session to be created")
	}
	if session.Token == "" {
		t.Error("session token should be non-empty")
	}
	if session.UserID != createdUser.ID {
		t.Errorf("session user ID = %q, want %q", session.UserID, createdUser.ID)
	}
	if user.ID != createdUser.ID {
		t.Errorf("returned user ID = %q, want %q", user.ID, createdUser.ID)
	}

	// 有効期限は約7日後
	wantExpiry := time.Now().Add(604800 * time.Second)
	if session.ExpiresAt.Before(wantExpiry.Add(-time.Minute)) || session.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("session expiry = %v, want ~%v", session.ExpiresAt, wantExpiry)
	}
}

func TestCreateSession_ExistingUser_DoesNotCreateUser(t *testing.T) {
	existing := &model.User{ID: "user-1", Email: "mike@example.com", Name: "Mike"}
	created := false

	provider := &mockIdentityProvider{
		exchangeCodeFn: func(_ context.Context, _ string) (*IdentityInfo, error) {
			return &IdentityInfo{Email: "mike@example.com", Name: "Mike"}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			return existing, nil
		},
		createFn: func(_ context.Context, _ *model.User) error {
			created = true
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{}

	svc := NewService(provider, userRepo, sessionRepo, ServiceConfig{SessionMaxAge: 604800})

	session, user, err := svc.CreateSession(context.Background(), "valid-code")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if created {
		t.Error("existing user should not be re-created")
	}
	if user.ID != "user-1" {
		t.Errorf("user ID = %q, want %q", user.ID, "user-1")
	}
	if session.UserID != "user-1" {
		t.Errorf("session user ID = %q, want %q", session.UserID, "user-1")
	}
}

func TestCreateSession_ExchangeFails_NoSessionCreated(t *testing.T) {
	sessionCreated := false

	provider := &mockIdentityProvider{
		exchangeCodeFn: func(_ context.Context, _ string) (*IdentityInfo, error) {
			return nil, errors.New("invalid session")
		},
	}
	sessionRepo := &mockSessionRepo{
		createFn: func(_ context.Context, _ *model.Session) error {
			sessionCreated = true
			return nil
		},
	}

	svc := NewService(provider, &mockUserRepo{}, sessionRepo, ServiceConfig{SessionMaxAge: 604800})

	_, _, err := svc.CreateSession(context.Background(), "bad-code")
	if err == nil {
		t.Fatal("expected error for rejected code")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeAuthExchangeFailed {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeAuthExchangeFailed)
	}

	if sessionCreated {
		t.Error("no session should be created when exchange fails")
	}
}

func TestCreateSession_ProviderUnreachable_ReturnsUnavailable(t *testing.T) {
	provider := &mockIdentityProvider{
		exchangeCodeFn: func(_ context.Context, _ string) (*IdentityInfo, error) {
			return nil, fmt.Errorf("%w: connection refused", ErrProviderUnavailable)
		},
	}

	svc := NewService(provider, &mockUserRepo{}, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 604800})

	_, _, err := svc.CreateSession(context.Background(), "code")
	if err == nil {
		t.Fatal("expected error when provider is unreachable")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeAuthProviderUnavailable {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeAuthProviderUnavailable)
	}
}

func TestUserByID_ReturnsUser(t *testing.T) {
	userRepo := &mockUserRepo{
		findByIDFn: func(_ context.Context, id string) (*model.User, error) {
			if id != "user-1" {
				return nil, nil
			}
			return &model.User{ID: id, Email: "mike@example.com"}, nil
		},
	}

	svc := NewService(&mockIdentityProvider{}, userRepo, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 604800})

	user, err := svc.UserByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UserByID() error = %v", err)
	}
	if user.Email != "mike@example.com" {
		t.Errorf("user email = %q, want %q", user.Email, "mike@example.com")
	}
}

func TestUserByID_UnknownUser_ReturnsNotFound(t *testing.T) {
	svc := NewService(&mockIdentityProvider{}, &mockUserRepo{}, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 604800})

	_, err := svc.UserByID(context.Background(), "no-such-user")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeUserNotFound)
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	deleted := ""
	sessionRepo := &mockSessionRepo{
		deleteByTokenFn: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
	}

	svc := NewService(&mockIdentityProvider{}, &mockUserRepo{}, sessionRepo, ServiceConfig{SessionMaxAge: 604800})

	if err := svc.Logout(context.Background(), "some-token"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if deleted != "some-token" {
		t.Errorf("deleted token = %q, want %q", deleted, "some-token")
	}
}

func TestGenerateSessionToken_UniqueAndWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := generateSessionToken()
		if err != nil {
			t.Fatalf("generateSessionToken() error = %v", err)
		}
		if len(token) != 64 {
			t.Fatalf("token length = %d, want 64", len(token))
		}
		if seen[token] {
			t.Fatal("generated duplicate session token")
		}
		seen[token] = true
	}
}
