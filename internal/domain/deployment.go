package domain

import "time"

type DeploymentType string

const (
	DeploymentSaaS DeploymentType = "saas"
	DeploymentBYOC DeploymentType = "byoc"
)

func (t DeploymentType) Valid() bool {
	switch t {
	case DeploymentSaaS, DeploymentBYOC:
		return true
	}
	return false
}

type CloudProvider string

const (
	CloudGCP    CloudProvider = "gcp"
	CloudAWS    CloudProvider = "aws"
	CloudAzure  CloudProvider = "azure"
	CloudOnPrem CloudProvider = "on-prem"
)

func (p CloudProvider) Valid() bool {
	switch p {
	case CloudGCP, CloudAWS, CloudAzure, CloudOnPrem:
		return true
	}
	return false
}

type DeploymentStatus string

const (
	DeploymentPending   DeploymentStatus = "pending"
	DeploymentDeploying DeploymentStatus = "deploying"
	DeploymentRunning   DeploymentStatus = "running"
	DeploymentFailed    DeploymentStatus = "failed"
	DeploymentStopped   DeploymentStatus = "stopped"
)

func (s DeploymentStatus) Valid() bool {
	switch s {
	case DeploymentPending, DeploymentDeploying, DeploymentRunning, DeploymentFailed, DeploymentStopped:
		return true
	}
	return false
}

// deploymentTransitions is the allowed next-state set per current state.
// Same-state writes are accepted as no-ops so retrying clients are not
// rejected.
var deploymentTransitions = map[DeploymentStatus][]DeploymentStatus{
	DeploymentPending:   {DeploymentDeploying, DeploymentFailed, DeploymentStopped},
	DeploymentDeploying: {DeploymentRunning, DeploymentFailed, DeploymentStopped},
	DeploymentRunning:   {DeploymentFailed, DeploymentStopped},
	DeploymentFailed:    {DeploymentPending, DeploymentDeploying},
	DeploymentStopped:   {DeploymentDeploying},
}

// CanTransitionTo reports whether next is a legal status change from s.
func (s DeploymentStatus) CanTransitionTo(next DeploymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range deploymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Deployment struct {
	ID             int64            `json:"id"`
	UserID         int64            `json:"userId"`
	AgentID        int64            `json:"agentId"`
	DeploymentType DeploymentType   `json:"deploymentType"`
	Status         DeploymentStatus `json:"status"`
	CloudProvider  *CloudProvider   `json:"cloudProvider,omitempty"`
	Config         map[string]any   `json:"config,omitempty"`
	CredentialsID  *int64           `json:"credentialsId,omitempty"`
	DeploymentURL  *string          `json:"deploymentUrl,omitempty"`
	ErrorMessage   *string          `json:"errorMessage,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionRunning   ExecutionStatus = "running"
	ExecutionCompleted ExecutionStatus = "completed"
	ExecutionFailed    ExecutionStatus = "failed"
	ExecutionTimeout   ExecutionStatus = "timeout"
)

type AgentExecution struct {
	ID              int64           `json:"id"`
	DeploymentID    int64           `json:"deploymentId"`
	Status          ExecutionStatus `json:"status"`
	Input           map[string]any  `json:"input,omitempty"`
	Output          map[string]any  `json:"output,omitempty"`
	Error           *string         `json:"error,omitempty"`
	ExecutionTimeMs *int            `json:"executionTimeMs,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
}

// DeploymentDetail is a deployment joined with its executions.
type DeploymentDetail struct {
	Deployment
	Executions []AgentExecution `json:"executions"`
}
