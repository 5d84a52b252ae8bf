package service

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
)

var (
	ErrDeploymentNotFound = errors.New("deployment not found")
	// ErrMissingCloudProvider is returned when a byoc deployment does not
	// name the cloud it deploys into.
	ErrMissingCloudProvider = errors.New("cloud provider is required for byoc deployments")
)

type DeploymentService struct {
	deployments domain.DeploymentStore
}

func NewDeploymentService(deployments domain.DeploymentStore) *DeploymentService {
	return &DeploymentService{deployments: deployments}
}

type CreateDeploymentInput struct {
	AgentID        int64                 `json:"agentId"`
	DeploymentType domain.DeploymentType `json:"deploymentType"`
	CloudProvider  *domain.CloudProvider `json:"cloudProvider,omitempty"`
	Config         map[string]any        `json:"config,omitempty"`
}

// Create provisions a deployment record owned by the caller. Deployments
// always start pending; no infrastructure is touched here.
func (s *DeploymentService) Create(ctx context.Context, caller *domain.User, in CreateDeploymentInput) (*domain.Deployment, error) {
	if in.DeploymentType == domain.DeploymentBYOC && in.CloudProvider == nil {
		return nil, ErrMissingCloudProvider
	}

	d := &domain.Deployment{
		UserID:         caller.ID,
		AgentID:        in.AgentID,
		DeploymentType: in.DeploymentType,
		Status:         domain.DeploymentPending,
		CloudProvider:  in.CloudProvider,
		Config:         in.Config,
	}
	if err := s.deployments.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns the caller's deployments.
func (s *DeploymentService) List(ctx context.Context, caller *domain.User) ([]domain.Deployment, error) {
	deployments, err := s.deployments.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if deployments == nil {
		deployments = []domain.Deployment{}
	}
	return deployments, nil
}

// Get returns a deployment the caller owns, joined with its executions.
func (s *DeploymentService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.DeploymentDetail, error) {
	d, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	executions, err := s.deployments.ListExecutions(ctx, id)
	if err != nil {
		return nil, err
	}
	if executions == nil {
		executions = []domain.AgentExecution{}
	}
	return &domain.DeploymentDetail{Deployment: *d, Executions: executions}, nil
}

// UpdateStatus moves a deployment the caller owns to the given status,
// validated against the deployment transition table. A same-state write is
// a no-op.
func (s *DeploymentService) UpdateStatus(ctx context.Context, caller *domain.User, id int64, status domain.DeploymentStatus) error {
	d, err := s.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	if !d.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}
	if d.Status == status {
		return nil
	}
	return s.deployments.UpdateStatus(ctx, id, status)
}

// owned loads a deployment and verifies the caller owns it. A missing row
// is indistinguishable from someone else's row.
func (s *DeploymentService) owned(ctx context.Context, caller *domain.User, id int64) (*domain.Deployment, error) {
	d, err := s.deployments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if d.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return d, nil
}
