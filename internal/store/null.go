package store

import (
	"context"

	"github.com/agentmart/agentmart/internal/domain"
	"go.uber.org/zap"
)

// The null store family backs the process when no database is configured.
// Reads degrade to empty results so browsing stays functional; writes that
// cannot degrade return ErrUnavailable. The user upsert is the one write
// that no-ops, so sign-in never fails the caller.

type NullUserStore struct {
	logger *zap.Logger
}

func NewNullUserStore(logger *zap.Logger) *NullUserStore {
	return &NullUserStore{logger: logger}
}

func (s *NullUserStore) Upsert(ctx context.Context, u *domain.UserUpsert) error {
	if u.OpenID == "" {
		return ErrInvalidInput
	}
	s.logger.Warn("cannot upsert user: database not configured", zap.String("open_id", u.OpenID))
	return nil
}

func (s *NullUserStore) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	return nil, ErrNotFound
}

type NullAgentStore struct {
	logger *zap.Logger
}

func NewNullAgentStore(logger *zap.Logger) *NullAgentStore {
	return &NullAgentStore{logger: logger}
}

func (s *NullAgentStore) Create(ctx context.Context, a *domain.Agent) error {
	s.logger.Warn("cannot create agent: database not configured")
	return ErrUnavailable
}

func (s *NullAgentStore) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	return nil, ErrNotFound
}

func (s *NullAgentStore) ListPublished(ctx context.Context, limit, offset int, category string) ([]domain.Agent, error) {
	return nil, nil
}

func (s *NullAgentStore) ListByDeveloper(ctx context.Context, developerID int64) ([]domain.Agent, error) {
	return nil, nil
}

func (s *NullAgentStore) Update(ctx context.Context, id int64, patch domain.AgentPatch) error {
	s.logger.Warn("cannot update agent: database not configured")
	return ErrUnavailable
}

func (s *NullAgentStore) UpdateStatus(ctx context.Context, id int64, status domain.AgentStatus) error {
	s.logger.Warn("cannot update agent status: database not configured")
	return ErrUnavailable
}

func (s *NullAgentStore) ListTools(ctx context.Context, agentID int64) ([]domain.AgentTool, error) {
	return nil, nil
}

func (s *NullAgentStore) ListReviews(ctx context.Context, agentID int64) ([]domain.AgentReview, error) {
	return nil, nil
}

type NullDeploymentStore struct {
	logger *zap.Logger
}

func NewNullDeploymentStore(logger *zap.Logger) *NullDeploymentStore {
	return &NullDeploymentStore{logger: logger}
}

func (s *NullDeploymentStore) Create(ctx context.Context, d *domain.Deployment) error {
	s.logger.Warn("cannot create deployment: database not configured")
	return ErrUnavailable
}

func (s *NullDeploymentStore) GetByID(ctx context.Context, id int64) (*domain.Deployment, error) {
	return nil, ErrNotFound
}

func (s *NullDeploymentStore) ListByUser(ctx context.Context, userID int64) ([]domain.Deployment, error) {
	return nil, nil
}

func (s *NullDeploymentStore) UpdateStatus(ctx context.Context, id int64, status domain.DeploymentStatus) error {
	s.logger.Warn("cannot update deployment status: database not configured")
	return ErrUnavailable
}

func (s *NullDeploymentStore) ListExecutions(ctx context.Context, deploymentID int64) ([]domain.AgentExecution, error) {
	return nil, nil
}

type NullSubscriptionStore struct {
	logger *zap.Logger
}

func NewNullSubscriptionStore(logger *zap.Logger) *NullSubscriptionStore {
	return &NullSubscriptionStore{logger: logger}
}

func (s *NullSubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	s.logger.Warn("cannot create subscription: database not configured")
	return ErrUnavailable
}

func (s *NullSubscriptionStore) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	return nil, ErrNotFound
}

func (s *NullSubscriptionStore) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	return nil, nil
}

func (s *NullSubscriptionStore) UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error {
	s.logger.Warn("cannot update subscription status: database not configured")
	return ErrUnavailable
}

func (s *NullSubscriptionStore) ListInvoicesByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	return nil, nil
}
