package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
	"go.uber.org/zap"
)

// mockUserStore implements domain.UserStore and records the last upsert.
type mockUserStore struct {
	users      map[string]*domain.User
	lastUpsert *domain.UserUpsert
	upsertErr  error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*domain.User)}
}

func (m *mockUserStore) Upsert(ctx context.Context, u *domain.UserUpsert) error {
	if u.OpenID == "" {
		return store.ErrInvalidInput
	}
	m.lastUpsert = u
	return m.upsertErr
}

func (m *mockUserStore) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	u, ok := m.users[openID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func strPtr(s string) *string { return &s }

func TestIdentityService_SignInMergesPresentFields(t *testing.T) {
	users := newMockUserStore()
	s := NewIdentityService(users, zap.NewNop())

	err := s.SignIn(context.Background(), IdentityClaims{
		OpenID: "abc",
		Email:  strPtr("a@example.com"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	up := users.lastUpsert
	if up.OpenID != "abc" {
		t.Fatalf("expected open id abc, got %s", up.OpenID)
	}
	if !up.Email.Set || *up.Email.Value != "a@example.com" {
		t.Fatal("expected email present")
	}
	if up.Name.Set {
		t.Fatal("expected name absent")
	}
	if up.Role.Set {
		t.Fatal("expected role absent")
	}
}

func TestIdentityService_SignInMissingOpenID(t *testing.T) {
	s := NewIdentityService(newMockUserStore(), zap.NewNop())

	err := s.SignIn(context.Background(), IdentityClaims{})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIdentityService_SignInReRaisesStoreError(t *testing.T) {
	users := newMockUserStore()
	users.upsertErr = errors.New("connection reset")
	s := NewIdentityService(users, zap.NewNop())

	err := s.SignIn(context.Background(), IdentityClaims{OpenID: "abc"})
	if err == nil {
		t.Fatal("expected upsert failure to propagate")
	}
}

func TestIdentityService_MeUnknownUser(t *testing.T) {
	s := NewIdentityService(newMockUserStore(), zap.NewNop())

	u, err := s.Me(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestIdentityService_Me(t *testing.T) {
	users := newMockUserStore()
	users.users["abc"] = &domain.User{ID: 1, OpenID: "abc", Role: domain.RoleUser}
	s := NewIdentityService(users, zap.NewNop())

	u, err := s.Me(context.Background(), "abc")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u == nil || u.ID != 1 {
		t.Fatalf("expected user 1, got %+v", u)
	}
}
