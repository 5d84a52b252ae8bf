package domain

import "testing"

func TestDeploymentTransitions(t *testing.T) {
	tests := []struct {
		from, to DeploymentStatus
		want     bool
	}{
		{DeploymentPending, DeploymentDeploying, true},
		{DeploymentPending, DeploymentRunning, false},
		{DeploymentPending, DeploymentStopped, true},
		{DeploymentDeploying, DeploymentRunning, true},
		{DeploymentRunning, DeploymentStopped, true},
		{DeploymentRunning, DeploymentPending, false},
		{DeploymentStopped, DeploymentDeploying, true},
		{DeploymentStopped, DeploymentRunning, false},
		{DeploymentFailed, DeploymentPending, true},
		{DeploymentFailed, DeploymentRunning, false},
		// Same-state writes are no-ops, never errors.
		{DeploymentRunning, DeploymentRunning, true},
		{DeploymentStopped, DeploymentStopped, true},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSubscriptionTransitions(t *testing.T) {
	tests := []struct {
		from, to SubscriptionStatus
		want     bool
	}{
		{SubscriptionActive, SubscriptionCancelled, true},
		{SubscriptionActive, SubscriptionPaused, true},
		{SubscriptionPaused, SubscriptionActive, true},
		{SubscriptionPaused, SubscriptionCancelled, true},
		{SubscriptionCancelled, SubscriptionActive, false},
		{SubscriptionExpired, SubscriptionActive, false},
		{SubscriptionExpired, SubscriptionCancelled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAgentCanPublish(t *testing.T) {
	publishable := []AgentStatus{AgentDraft, AgentVerified, AgentPublished}
	for _, s := range publishable {
		if !s.CanPublish() {
			t.Errorf("expected %s to be publishable", s)
		}
	}
	for _, s := range []AgentStatus{AgentDeprecated, AgentRetired} {
		if s.CanPublish() {
			t.Errorf("expected %s to not be publishable", s)
		}
	}
}

func TestRoleCanPublishAgents(t *testing.T) {
	if !RoleAdmin.CanPublishAgents() {
		t.Fatal("admin should publish agents")
	}
	for _, r := range []Role{RoleUser, RoleDeveloper, RoleOperator} {
		if r.CanPublishAgents() {
			t.Errorf("role %s should not publish agents", r)
		}
	}
}
