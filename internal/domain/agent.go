package domain

import "time"

type AgentStatus string

const (
	AgentDraft      AgentStatus = "draft"
	AgentVerified   AgentStatus = "verified"
	AgentPublished  AgentStatus = "published"
	AgentDeprecated AgentStatus = "deprecated"
	AgentRetired    AgentStatus = "retired"
)

func (s AgentStatus) Valid() bool {
	switch s {
	case AgentDraft, AgentVerified, AgentPublished, AgentDeprecated, AgentRetired:
		return true
	}
	return false
}

// CanPublish reports whether an agent in this status may be published.
// Re-publishing an already published agent is a no-op, not an error.
func (s AgentStatus) CanPublish() bool {
	switch s {
	case AgentDraft, AgentVerified, AgentPublished:
		return true
	}
	return false
}

type BillingModel string

const (
	BillingPerTask  BillingModel = "per-task"
	BillingMonthly  BillingModel = "monthly"
	BillingPerAgent BillingModel = "per-agent"
)

func (m BillingModel) Valid() bool {
	switch m {
	case BillingPerTask, BillingMonthly, BillingPerAgent:
		return true
	}
	return false
}

type Agent struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Version        string       `json:"version"`
	Status         AgentStatus  `json:"status"`
	DeveloperID    int64        `json:"developerId"`
	Icon           *string      `json:"icon,omitempty"`
	BasePrice      int64        `json:"basePrice"` // cents
	BillingModel   BillingModel `json:"billingModel"`
	Rating         float64      `json:"rating"`
	ReviewCount    int          `json:"reviewCount"`
	DownloadCount  int          `json:"downloadCount"`
	ManifestURL    *string      `json:"manifestUrl,omitempty"`
	ContainerImage *string      `json:"containerImage,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// AgentPatch is a partial update; only Set fields are written.
type AgentPatch struct {
	Name        Opt[string] `json:"name"`
	Description Opt[string] `json:"description"`
	Icon        Opt[string] `json:"icon"`
	BasePrice   Opt[int64]  `json:"basePrice"`
}

// Empty reports whether the patch carries no fields at all.
func (p AgentPatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Icon.Set && !p.BasePrice.Set
}

type ToolType string

const (
	ToolPython    ToolType = "python"
	ToolREST      ToolType = "rest"
	ToolCLI       ToolType = "cli"
	ToolTerraform ToolType = "terraform"
	ToolShell     ToolType = "shell"
)

type PermissionLevel string

const (
	PermissionRead  PermissionLevel = "read"
	PermissionWrite PermissionLevel = "write"
	PermissionAdmin PermissionLevel = "admin"
)

type AgentTool struct {
	ID              int64           `json:"id"`
	AgentID         int64           `json:"agentId"`
	ToolName        string          `json:"toolName"`
	ToolType        ToolType        `json:"toolType"`
	Description     *string         `json:"description,omitempty"`
	InputSchema     map[string]any  `json:"inputSchema,omitempty"`
	OutputSchema    map[string]any  `json:"outputSchema,omitempty"`
	PermissionLevel PermissionLevel `json:"permissionLevel"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type AgentReview struct {
	ID        int64     `json:"id"`
	AgentID   int64     `json:"agentId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"` // 1-5
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AgentDetail is an agent joined with its tools and reviews.
type AgentDetail struct {
	Agent
	Tools   []AgentTool   `json:"tools"`
	Reviews []AgentReview `json:"reviews"`
}
