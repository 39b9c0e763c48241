package user

import (
	"context"
	"errors"
	"testing"

	"github.com/kosuke/adcraft/internal/model"
	"github.com/kosuke/adcraft/internal/repository"
)

// --- モック定義 ---

type mockUserRepo struct {
	findByIDFn   func(ctx context.Context, id string) (*model.User, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(_ context.Context, _ *model.User) error {
	return nil
}

func (m *mockUserRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

type mockSessionRepo struct {
	deleteByUserIDFn func(ctx context.Context, userID string) error
}

func (m *mockSessionRepo) Create(_ context.Context, _ *model.Session) error { return nil }
func (m *mockSessionRepo) FindByToken(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}
func (m *mockSessionRepo) DeleteByToken(_ context.Context, _ string) error { return nil }
func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

type mockContentDeleter struct {
	deleteByUserIDFn func(ctx context.Context, userID string) error
}

func (m *mockContentDeleter) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

// --- compile-time interface checks ---
var _ repository.UserRepository = (*mockUserRepo)(nil)
var _ repository.SessionRepository = (*mockSessionRepo)(nil)
var _ ContentDeleter = (*mockContentDeleter)(nil)

// --- テスト ---

func TestWithdraw_DeletesContentSessionsAndUser(t *testing.T) {
	var order []string

	userRepo := &mockUserRepo{
		findByIDFn: func(_ context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "mike@example.com"}, nil
		},
		deleteByIDFn: func(_ context.Context, id string) error {
			order = append(order, "user")
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		deleteByUserIDFn: func(_ context.Context, _ string) error {
			order = append(order, "sessions")
			return nil
		},
	}
	contentDeleter := &mockContentDeleter{
		deleteByUserIDFn: func(_ context.Context, _ string) error {
			order = append(order, "content")
			return nil
		},
	}

	svc := NewService(userRepo, sessionRepo, contentDeleter)

	if err := svc.Withdraw(context.Background(), "user-1"); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	want := []string{"content", "sessions", "user"}
	if len(order) != len(want) {
		t.Fatalf("deletion order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("deletion order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestWithdraw_UnknownUser_ReturnsNotFound(t *testing.T) {
	userRepo := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, nil
		},
	}

	svc := NewService(userRepo, &mockSessionRepo{}, &mockContentDeleter{})

	err := svc.Withdraw(context.Background(), "no-such-user")
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

func TestWithdraw_ContentDeletionFails_AbortsBeforeUserDeletion(t *testing.T) {
	userDeleted := false

	userRepo := &mockUserRepo{
		findByIDFn: func(_ context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		deleteByIDFn: func(_ context.Context, _ string) error {
			userDeleted = true
			return nil
		},
	}
	contentDeleter := &mockContentDeleter{
		deleteByUserIDFn: func(_ context.Context, _ string) error {
			return errors.New("db unavailable")
		},
	}

	svc := NewService(userRepo, &mockSessionRepo{}, contentDeleter)

	if err := svc.Withdraw(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error when content deletion fails")
	}
	if userDeleted {
		t.Error("user should not be deleted when content deletion fails")
	}
}
