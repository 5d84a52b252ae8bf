package store

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeploymentStore struct {
	db *pgxpool.Pool
}

func NewDeploymentStore(db *pgxpool.Pool) *DeploymentStore {
	return &DeploymentStore{db: db}
}

const deploymentColumns = `id, user_id, agent_id, deployment_type, status, cloud_provider,
	config, credentials_id, deployment_url, error_message, created_at, updated_at`

func scanDeployment(row pgx.Row, d *domain.Deployment) error {
	return row.Scan(&d.ID, &d.UserID, &d.AgentID, &d.DeploymentType, &d.Status,
		&d.CloudProvider, &d.Config, &d.CredentialsID, &d.DeploymentURL,
		&d.ErrorMessage, &d.CreatedAt, &d.UpdatedAt)
}

func (s *DeploymentStore) Create(ctx context.Context, d *domain.Deployment) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO deployments (user_id, agent_id, deployment_type, status, cloud_provider, config)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		d.UserID, d.AgentID, d.DeploymentType, d.Status, d.CloudProvider, d.Config,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (s *DeploymentStore) GetByID(ctx context.Context, id int64) (*domain.Deployment, error) {
	d := &domain.Deployment{}
	err := scanDeployment(s.db.QueryRow(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE id = $1`, id), d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *DeploymentStore) ListByUser(ctx context.Context, userID int64) ([]domain.Deployment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deployments []domain.Deployment
	for rows.Next() {
		var d domain.Deployment
		if err := scanDeployment(rows, &d); err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return deployments, rows.Err()
}

func (s *DeploymentStore) UpdateStatus(ctx context.Context, id int64, status domain.DeploymentStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE deployments SET status = $2, updated_at = NOW() WHERE id = $1`,
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

func (s *DeploymentStore) ListExecutions(ctx context.Context, deploymentID int64) ([]domain.AgentExecution, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, deployment_id, status, input, output, error, execution_time_ms, created_at, completed_at
		 FROM agent_executions WHERE deployment_id = $1 ORDER BY created_at DESC`,
		deploymentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []domain.AgentExecution
	for rows.Next() {
		var e domain.AgentExecution
		if err := rows.Scan(&e.ID, &e.DeploymentID, &e.Status, &e.Input, &e.Output,
			&e.Error, &e.ExecutionTimeMs, &e.CreatedAt, &e.CompletedAt); err != nil {
			return nil, err
		}
		executions = append(executions, e)
	}
	return executions, rows.Err()
}
