package domain

import "context"

type UserStore interface {
	// Upsert inserts or merges a user row keyed by OpenID. Only fields
	// present in the input touch the row on conflict.
	Upsert(ctx context.Context, u *UserUpsert) error
	GetByOpenID(ctx context.Context, openID string) (*User, error)
}

type AgentStore interface {
	Create(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id int64) (*Agent, error)
	ListPublished(ctx context.Context, limit, offset int, category string) ([]Agent, error)
	ListByDeveloper(ctx context.Context, developerID int64) ([]Agent, error)
	Update(ctx context.Context, id int64, patch AgentPatch) error
	UpdateStatus(ctx context.Context, id int64, status AgentStatus) error
	ListTools(ctx context.Context, agentID int64) ([]AgentTool, error)
	ListReviews(ctx context.Context, agentID int64) ([]AgentReview, error)
}

type DeploymentStore interface {
	Create(ctx context.Context, d *Deployment) error
	GetByID(ctx context.Context, id int64) (*Deployment, error)
	ListByUser(ctx context.Context, userID int64) ([]Deployment, error)
	UpdateStatus(ctx context.Context, id int64, status DeploymentStatus) error
	ListExecutions(ctx context.Context, deploymentID int64) ([]AgentExecution, error)
}

type SubscriptionStore interface {
	Create(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id int64) (*Subscription, error)
	ListByUser(ctx context.Context, userID int64) ([]Subscription, error)
	UpdateStatus(ctx context.Context, id int64, status SubscriptionStatus) error
	ListInvoicesByUser(ctx context.Context, userID int64) ([]Invoice, error)
}
