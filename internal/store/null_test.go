package store

import (
	"context"
	"errors"
	"testing"

	"github.com/agentmart/agentmart/internal/domain"
	"go.uber.org/zap"
)

func TestNullStoresReadsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()
	stores := NewNull(zap.NewNop())

	agents, err := stores.Agents.ListPublished(ctx, 20, 0, "")
	if err != nil || len(agents) != 0 {
		t.Fatalf("expected empty read, got %v %v", agents, err)
	}
	if _, err := stores.Agents.GetByID(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	deployments, err := stores.Deployments.ListByUser(ctx, 1)
	if err != nil || len(deployments) != 0 {
		t.Fatalf("expected empty read, got %v %v", deployments, err)
	}
	subs, err := stores.Subscriptions.ListByUser(ctx, 1)
	if err != nil || len(subs) != 0 {
		t.Fatalf("expected empty read, got %v %v", subs, err)
	}
	if _, err := stores.Users.GetByOpenID(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNullStoresWritesUnavailable(t *testing.T) {
	ctx := context.Background()
	stores := NewNull(zap.NewNop())

	if err := stores.Agents.Create(ctx, &domain.Agent{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := stores.Deployments.UpdateStatus(ctx, 1, domain.DeploymentStopped); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := stores.Subscriptions.Create(ctx, &domain.Subscription{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNullUserUpsertIsNoop(t *testing.T) {
	ctx := context.Background()
	stores := NewNull(zap.NewNop())

	// Sign-in must not fail the caller when persistence is unavailable.
	if err := stores.Users.Upsert(ctx, &domain.UserUpsert{OpenID: "abc"}); err != nil {
		t.Fatalf("expected no-op upsert, got %v", err)
	}

	// The identity key is still required.
	if err := stores.Users.Upsert(ctx, &domain.UserUpsert{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
