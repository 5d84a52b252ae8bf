package store

import (
	"github.com/agentmart/agentmart/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Stores bundles the per-entity stores handed to the API layer.
type Stores struct {
	Users         domain.UserStore
	Agents        domain.AgentStore
	Deployments   domain.DeploymentStore
	Subscriptions domain.SubscriptionStore
}

// New returns pgx-backed stores over the given pool.
func New(db *pgxpool.Pool, ownerOpenID string) Stores {
	return Stores{
		Users:         NewUserStore(db, ownerOpenID),
		Agents:        NewAgentStore(db),
		Deployments:   NewDeploymentStore(db),
		Subscriptions: NewSubscriptionStore(db),
	}
}

// NewNull returns the degrade-to-empty store family used when no database
// connection is configured.
func NewNull(logger *zap.Logger) Stores {
	return Stores{
		Users:         NewNullUserStore(logger),
		Agents:        NewNullAgentStore(logger),
		Deployments:   NewNullDeploymentStore(logger),
		Subscriptions: NewNullSubscriptionStore(logger),
	}
}
