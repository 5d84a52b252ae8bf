package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgentStore struct {
	db *pgxpool.Pool
}

func NewAgentStore(db *pgxpool.Pool) *AgentStore {
	return &AgentStore{db: db}
}

const agentColumns = `id, name, description, category, version, status, developer_id, icon,
	base_price, billing_model, rating::float8, review_count, download_count,
	manifest_url, container_image, created_at, updated_at`

func scanAgent(row pgx.Row, a *domain.Agent) error {
	return row.Scan(&a.ID, &a.Name, &a.Description, &a.Category, &a.Version, &a.Status,
		&a.DeveloperID, &a.Icon, &a.BasePrice, &a.BillingModel, &a.Rating,
		&a.ReviewCount, &a.DownloadCount, &a.ManifestURL, &a.ContainerImage,
		&a.CreatedAt, &a.UpdatedAt)
}

func (s *AgentStore) Create(ctx context.Context, a *domain.Agent) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO agents (name, description, category, version, status, developer_id, base_price, billing_model)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, rating::float8, review_count, download_count, created_at, updated_at`,
		a.Name, a.Description, a.Category, a.Version, a.Status, a.DeveloperID, a.BasePrice, a.BillingModel,
	).Scan(&a.ID, &a.Rating, &a.ReviewCount, &a.DownloadCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *AgentStore) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	a := &domain.Agent{}
	err := scanAgent(s.db.QueryRow(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE id = $1`, id), a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AgentStore) ListPublished(ctx context.Context, limit, offset int, category string) ([]domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE status = $1`
	args := []any{domain.AgentPublished}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAgents(rows)
}

func (s *AgentStore) ListByDeveloper(ctx context.Context, developerID int64) ([]domain.Agent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+agentColumns+` FROM agents WHERE developer_id = $1 ORDER BY created_at DESC`,
		developerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAgents(rows)
}

func collectAgents(rows pgx.Rows) ([]domain.Agent, error) {
	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := scanAgent(rows, &a); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (s *AgentStore) Update(ctx context.Context, id int64, patch domain.AgentPatch) error {
	if patch.Empty() {
		return nil
	}

	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name.Set {
		set("name", patch.Name.Value)
	}
	if patch.Description.Set {
		set("description", patch.Description.Value)
	}
	if patch.Icon.Set {
		set("icon", patch.Icon.Value)
	}
	if patch.BasePrice.Set {
		set("base_price", patch.BasePrice.Value)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE agents SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AgentStore) UpdateStatus(ctx context.Context, id int64, status domain.AgentStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE agents SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AgentStore) ListTools(ctx context.Context, agentID int64) ([]domain.AgentTool, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, agent_id, tool_name, tool_type, description, input_schema, output_schema, permission_level, created_at
		 FROM agent_tools WHERE agent_id = $1 ORDER BY id`,
		agentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []domain.AgentTool
	for rows.Next() {
		var t domain.AgentTool
		if err := rows.Scan(&t.ID, &t.AgentID, &t.ToolName, &t.ToolType, &t.Description,
			&t.InputSchema, &t.OutputSchema, &t.PermissionLevel, &t.CreatedAt); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (s *AgentStore) ListReviews(ctx context.Context, agentID int64) ([]domain.AgentReview, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, agent_id, user_id, rating, comment, created_at, updated_at
		 FROM agent_reviews WHERE agent_id = $1 ORDER BY created_at DESC`,
		agentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.AgentReview
	for rows.Next() {
		var r domain.AgentReview
		if err := rows.Scan(&r.ID, &r.AgentID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
