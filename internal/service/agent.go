package service

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
)

var ErrAgentNotFound = errors.New("agent not found")

type AgentService struct {
	agents domain.AgentStore
}

func NewAgentService(agents domain.AgentStore) *AgentService {
	return &AgentService{agents: agents}
}

type CreateAgentInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	BillingModel domain.BillingModel `json:"billingModel"`
	BasePrice    int64               `json:"basePrice"`
}

// Create registers a new agent owned by the caller. Status is always draft
// regardless of input.
func (s *AgentService) Create(ctx context.Context, caller *domain.User, in CreateAgentInput) (*domain.Agent, error) {
	agent := &domain.Agent{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Version:      "1.0.0",
		Status:       domain.AgentDraft,
		DeveloperID:  caller.ID,
		BasePrice:    in.BasePrice,
		BillingModel: in.BillingModel,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// Update applies a partial update to an agent the caller develops.
func (s *AgentService) Update(ctx context.Context, caller *domain.User, id int64, patch domain.AgentPatch) error {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if agent.DeveloperID != caller.ID {
		return ErrForbidden
	}
	return s.agents.Update(ctx, id, patch)
}

// Publish moves an agent to published. Admin role required; the agent must
// be in a publishable status.
func (s *AgentService) Publish(ctx context.Context, caller *domain.User, id int64) error {
	if !caller.Role.CanPublishAgents() {
		return ErrForbidden
	}
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	if !agent.Status.CanPublish() {
		return ErrInvalidTransition
	}
	return s.agents.UpdateStatus(ctx, id, domain.AgentPublished)
}

// ListMine returns all agents owned by the caller, any status.
func (s *AgentService) ListMine(ctx context.Context, caller *domain.User) ([]domain.Agent, error) {
	agents, err := s.agents.ListByDeveloper(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []domain.Agent{}
	}
	return agents, nil
}
