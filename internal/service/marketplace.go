package service

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
)

const (
	defaultPageSize = 20
	searchPageSize  = 20
)

// categories is the fixed marketplace taxonomy; it is not derived from data.
var categories = []string{
	"DevOps",
	"Cloud Management",
	"CI/CD",
	"Monitoring",
	"Security",
	"Infrastructure",
	"Automation",
	"Analytics",
}

type MarketplaceService struct {
	agents domain.AgentStore
}

func NewMarketplaceService(agents domain.AgentStore) *MarketplaceService {
	return &MarketplaceService{agents: agents}
}

// AgentPage is a page of published agents. Total is the count of the
// returned page, not a full table count.
type AgentPage struct {
	Agents []domain.Agent `json:"agents"`
	Total  int            `json:"total"`
}

func (s *MarketplaceService) ListAgents(ctx context.Context, limit, offset int, category string) (*AgentPage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	agents, err := s.agents.ListPublished(ctx, limit, offset, category)
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []domain.Agent{}
	}
	return &AgentPage{Agents: agents, Total: len(agents)}, nil
}

func (s *MarketplaceService) GetAgentDetail(ctx context.Context, agentID int64) (*domain.AgentDetail, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	tools, err := s.agents.ListTools(ctx, agentID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.agents.ListReviews(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if tools == nil {
		tools = []domain.AgentTool{}
	}
	if reviews == nil {
		reviews = []domain.AgentReview{}
	}

	return &domain.AgentDetail{Agent: *agent, Tools: tools, Reviews: reviews}, nil
}

// SearchAgents returns a page of published agents. The query text is
// accepted but not yet applied as a predicate.
// TODO: add a full-text predicate on name/description once matching
// semantics are agreed with product.
func (s *MarketplaceService) SearchAgents(ctx context.Context, query, category string) ([]domain.Agent, error) {
	_ = query
	agents, err := s.agents.ListPublished(ctx, searchPageSize, 0, category)
	if err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []domain.Agent{}
	}
	return agents, nil
}

func (s *MarketplaceService) Categories() []string {
	return categories
}
