package store

import (
	"strings"
	"testing"
	"time"

	"github.com/agentmart/agentmart/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUserUpsertSQL_OnlyPresentFields(t *testing.T) {
	now := time.Now()
	u := &domain.UserUpsert{
		OpenID: "abc",
		Name:   domain.Some(strPtr("Ada")),
	}

	query, args := userUpsertSQL(u, "", now)

	if !strings.Contains(query, "name = EXCLUDED.name") {
		t.Fatalf("expected name in update set: %s", query)
	}
	if strings.Contains(query, "email = EXCLUDED.email") {
		t.Fatalf("email was absent and must not be updated: %s", query)
	}
	if strings.Contains(query, "role = EXCLUDED.role") {
		t.Fatalf("role was absent and must not be updated: %s", query)
	}
	// last_signed_in defaults into the insert values only.
	if !strings.Contains(query, "last_signed_in") {
		t.Fatalf("expected last_signed_in insert default: %s", query)
	}
	if strings.Contains(query, "last_signed_in = EXCLUDED.last_signed_in") {
		t.Fatalf("last_signed_in must not be updated when other fields changed: %s", query)
	}
	if len(args) != 3 { // open_id, name, last_signed_in default
		t.Fatalf("expected 3 args, got %d: %v", len(args), args)
	}
}

func TestUserUpsertSQL_EmptyUpdateBumpsLastSignedIn(t *testing.T) {
	u := &domain.UserUpsert{OpenID: "abc"}

	query, args := userUpsertSQL(u, "", time.Now())

	if !strings.Contains(query, "last_signed_in = EXCLUDED.last_signed_in") {
		t.Fatalf("expected sign-in to bump last_signed_in: %s", query)
	}
	if len(args) != 2 { // open_id, last_signed_in default
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

func TestUserUpsertSQL_OwnerBecomesAdmin(t *testing.T) {
	u := &domain.UserUpsert{OpenID: "owner-id"}

	query, args := userUpsertSQL(u, "owner-id", time.Now())

	if !strings.Contains(query, "role = EXCLUDED.role") {
		t.Fatalf("expected role in update set for owner: %s", query)
	}
	found := false
	for _, a := range args {
		if a == domain.RoleAdmin {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected admin role in args, got %v", args)
	}
}

func TestUserUpsertSQL_ExplicitRoleWins(t *testing.T) {
	u := &domain.UserUpsert{
		OpenID: "owner-id",
		Role:   domain.Some(domain.RoleOperator),
	}

	_, args := userUpsertSQL(u, "owner-id", time.Now())

	for _, a := range args {
		if a == domain.RoleAdmin {
			t.Fatal("explicit role must not be overridden by owner promotion")
		}
	}
}

func TestUserUpsertSQL_ExplicitLastSignedIn(t *testing.T) {
	signedIn := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	u := &domain.UserUpsert{
		OpenID:       "abc",
		LastSignedIn: domain.Some(signedIn),
	}

	query, args := userUpsertSQL(u, "", time.Now())

	if !strings.Contains(query, "last_signed_in = EXCLUDED.last_signed_in") {
		t.Fatalf("expected provided last_signed_in in update set: %s", query)
	}
	found := false
	for _, a := range args {
		if ts, ok := a.(time.Time); ok && ts.Equal(signedIn) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected provided timestamp in args, got %v", args)
	}
}
