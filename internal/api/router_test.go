package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agentmart/agentmart/internal/auth"
	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory stores backing the router tests.

type memUserStore struct {
	users  map[string]*domain.User
	nextID int64
}

func (m *memUserStore) Upsert(ctx context.Context, u *domain.UserUpsert) error {
	if u.OpenID == "" {
		return store.ErrInvalidInput
	}
	if _, ok := m.users[u.OpenID]; !ok {
		m.nextID++
		m.users[u.OpenID] = &domain.User{ID: m.nextID, OpenID: u.OpenID, Role: domain.RoleUser}
	}
	return nil
}

func (m *memUserStore) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	u, ok := m.users[openID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

type memAgentStore struct {
	agents  map[int64]*domain.Agent
	tools   map[int64][]domain.AgentTool
	reviews map[int64][]domain.AgentReview
	nextID  int64
}

func (m *memAgentStore) Create(ctx context.Context, a *domain.Agent) error {
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	copied := *a
	m.agents[a.ID] = &copied
	return nil
}

func (m *memAgentStore) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	a, ok := m.agents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAgentStore) ListPublished(ctx context.Context, limit, offset int, category string) ([]domain.Agent, error) {
	var out []domain.Agent
	for _, a := range m.agents {
		if a.Status != domain.AgentPublished {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, *a)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAgentStore) ListByDeveloper(ctx context.Context, developerID int64) ([]domain.Agent, error) {
	var out []domain.Agent
	for _, a := range m.agents {
		if a.DeveloperID == developerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAgentStore) Update(ctx context.Context, id int64, patch domain.AgentPatch) error {
	a, ok := m.agents[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.Name.Set {
		a.Name = patch.Name.Value
	}
	if patch.Description.Set {
		a.Description = patch.Description.Value
	}
	if patch.BasePrice.Set {
		a.BasePrice = patch.BasePrice.Value
	}
	return nil
}

func (m *memAgentStore) UpdateStatus(ctx context.Context, id int64, status domain.AgentStatus) error {
	a, ok := m.agents[id]
	if !ok {
		return store.ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *memAgentStore) ListTools(ctx context.Context, agentID int64) ([]domain.AgentTool, error) {
	return m.tools[agentID], nil
}

func (m *memAgentStore) ListReviews(ctx context.Context, agentID int64) ([]domain.AgentReview, error) {
	return m.reviews[agentID], nil
}

type memDeploymentStore struct {
	deployments map[int64]*domain.Deployment
	nextID      int64
}

func (m *memDeploymentStore) Create(ctx context.Context, d *domain.Deployment) error {
	m.nextID++
	d.ID = m.nextID
	copied := *d
	m.deployments[d.ID] = &copied
	return nil
}

func (m *memDeploymentStore) GetByID(ctx context.Context, id int64) (*domain.Deployment, error) {
	d, ok := m.deployments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *memDeploymentStore) ListByUser(ctx context.Context, userID int64) ([]domain.Deployment, error) {
	var out []domain.Deployment
	for _, d := range m.deployments {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDeploymentStore) UpdateStatus(ctx context.Context, id int64, status domain.DeploymentStatus) error {
	d, ok := m.deployments[id]
	if !ok {
		return store.ErrNotFound
	}
	d.Status = status
	return nil
}

func (m *memDeploymentStore) ListExecutions(ctx context.Context, deploymentID int64) ([]domain.AgentExecution, error) {
	return nil, nil
}

type memSubscriptionStore struct {
	subs   map[int64]*domain.Subscription
	nextID int64
}

func (m *memSubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	m.nextID++
	sub.ID = m.nextID
	copied := *sub
	m.subs[sub.ID] = &copied
	return nil
}

func (m *memSubscriptionStore) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *memSubscriptionStore) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, sub := range m.subs {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (m *memSubscriptionStore) UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error {
	sub, ok := m.subs[id]
	if !ok {
		return store.ErrNotFound
	}
	sub.Status = status
	return nil
}

func (m *memSubscriptionStore) ListInvoicesByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	return nil, nil
}

func newTestApp(t *testing.T) (*App, *auth.Sessions) {
	t.Helper()

	users := &memUserStore{users: map[string]*domain.User{
		"dev-1":   {ID: 1, OpenID: "dev-1", Role: domain.RoleDeveloper},
		"user-2":  {ID: 2, OpenID: "user-2", Role: domain.RoleUser},
		"admin-9": {ID: 9, OpenID: "admin-9", Role: domain.RoleAdmin},
	}, nextID: 100}
	stores := store.Stores{
		Users: users,
		Agents: &memAgentStore{
			agents:  make(map[int64]*domain.Agent),
			tools:   make(map[int64][]domain.AgentTool),
			reviews: make(map[int64][]domain.AgentReview),
		},
		Deployments:   &memDeploymentStore{deployments: make(map[int64]*domain.Deployment)},
		Subscriptions: &memSubscriptionStore{subs: make(map[int64]*domain.Subscription)},
	}

	sessions := auth.NewSessions("test-secret")
	return NewApp(stores, nil, sessions, zap.NewNop()), sessions
}

func sessionCookie(t *testing.T, sessions *auth.Sessions, openID string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(rec, openID))
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("session cookie not issued")
	return nil
}

func rpc(t *testing.T, app *App, cookie *http.Cookie, procedure string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/rpc/"+procedure, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestProtectedProceduresRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	protected := []struct {
		procedure string
		body      any
	}{
		{"agent.createAgent", map[string]any{"name": "X", "billingModel": "per-task"}},
		{"agent.updateAgent", map[string]any{"id": 1}},
		{"agent.publishAgent", map[string]any{"id": 1}},
		{"agent.getMyAgents", map[string]any{}},
		{"deployment.createDeployment", map[string]any{"agentId": 1, "deploymentType": "saas"}},
		{"deployment.listDeployments", map[string]any{}},
		{"deployment.getDeployment", map[string]any{"id": 1}},
		{"deployment.updateDeploymentStatus", map[string]any{"id": 1, "status": "deploying"}},
		{"billing.listSubscriptions", map[string]any{}},
		{"billing.createSubscription", map[string]any{"agentId": 1, "billingModel": "monthly"}},
		{"billing.cancelSubscription", map[string]any{"id": 1}},
		{"billing.listInvoices", map[string]any{}},
	}

	for _, tc := range protected {
		t.Run(tc.procedure, func(t *testing.T) {
			rec := rpc(t, app, nil, tc.procedure, tc.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
		})
	}
}

func TestAuthCallbackSignsIn(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/callback",
		bytes.NewReader([]byte(`{"openId":"new-user","email":"n@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "callback should issue a session cookie")

	rec = rpc(t, app, cookie, "auth.me", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "new-user", user.OpenID)
}

func TestAuthCallbackMissingOpenID(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/callback",
		bytes.NewReader([]byte(`{"email":"n@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))
}

func TestLogoutIsIdempotent(t *testing.T) {
	app, sessions := newTestApp(t)
	cookie := sessionCookie(t, sessions, "user-2")

	for i := 0; i < 2; i++ {
		rec := rpc(t, app, cookie, "auth.logout", map[string]any{})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp["success"], "logout %d", i+1)

		cleared := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == auth.CookieName && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "logout %d should clear the cookie", i+1)
	}
}

func TestMe(t *testing.T) {
	app, sessions := newTestApp(t)

	rec := rpc(t, app, nil, "auth.me", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())

	rec = rpc(t, app, sessionCookie(t, sessions, "dev-1"), "auth.me", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, int64(1), user.ID)
}

func TestGetCategories(t *testing.T) {
	app, _ := newTestApp(t)

	rec := rpc(t, app, nil, "marketplace.getCategories", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "DevOps")
	assert.Contains(t, got, "Cloud Management")
}

func TestCreatePublishFetchScenario(t *testing.T) {
	app, sessions := newTestApp(t)
	dev := sessionCookie(t, sessions, "dev-1")
	plain := sessionCookie(t, sessions, "user-2")
	admin := sessionCookie(t, sessions, "admin-9")

	rec := rpc(t, app, dev, "agent.createAgent", map[string]any{
		"name":         "Cost Optimizer",
		"description":  "Trims idle infrastructure",
		"category":     "DevOps",
		"billingModel": "per-task",
		"basePrice":    1000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created domain.Agent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.DeveloperID)
	assert.Equal(t, domain.AgentDraft, created.Status)

	// A plain user cannot publish.
	rec = rpc(t, app, plain, "agent.publishAgent", map[string]any{"id": created.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	// An admin can.
	rec = rpc(t, app, admin, "agent.publishAgent", map[string]any{"id": created.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = rpc(t, app, nil, "marketplace.getAgentDetail", map[string]any{"agentId": created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var detail domain.AgentDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, domain.AgentPublished, detail.Status)
}

func TestGetAgentDetailMissingIsNull(t *testing.T) {
	app, _ := newTestApp(t)

	rec := rpc(t, app, nil, "marketplace.getAgentDetail", map[string]any{"agentId": 404})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestCreateDeploymentBYOC(t *testing.T) {
	app, sessions := newTestApp(t)
	cookie := sessionCookie(t, sessions, "user-2")

	rec := rpc(t, app, cookie, "deployment.createDeployment", map[string]any{
		"agentId":        1,
		"deploymentType": "byoc",
		"cloudProvider":  "gcp",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var d domain.Deployment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, domain.DeploymentBYOC, d.DeploymentType)
	require.NotNil(t, d.CloudProvider)
	assert.Equal(t, domain.CloudGCP, *d.CloudProvider)
	assert.Equal(t, domain.DeploymentPending, d.Status)
}

func TestCreateDeploymentBYOCWithoutProvider(t *testing.T) {
	app, sessions := newTestApp(t)
	cookie := sessionCookie(t, sessions, "user-2")

	rec := rpc(t, app, cookie, "deployment.createDeployment", map[string]any{
		"agentId":        1,
		"deploymentType": "byoc",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))
}

func TestForeignRecordsAreForbidden(t *testing.T) {
	app, sessions := newTestApp(t)
	owner := sessionCookie(t, sessions, "user-2")
	other := sessionCookie(t, sessions, "dev-1")

	rec := rpc(t, app, owner, "deployment.createDeployment", map[string]any{
		"agentId":        1,
		"deploymentType": "saas",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var d domain.Deployment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))

	rec = rpc(t, app, other, "deployment.getDeployment", map[string]any{"id": d.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	rec = rpc(t, app, owner, "billing.createSubscription", map[string]any{
		"agentId":      1,
		"billingModel": "monthly",
		"pricePerUnit": 2500,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var sub domain.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))

	rec = rpc(t, app, other, "billing.cancelSubscription", map[string]any{"id": sub.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
}

func TestHealthWithoutDatabase(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
}

func TestListAgentsTotalIsPageCount(t *testing.T) {
	app, sessions := newTestApp(t)
	dev := sessionCookie(t, sessions, "dev-1")
	admin := sessionCookie(t, sessions, "admin-9")

	for i := 0; i < 3; i++ {
		rec := rpc(t, app, dev, "agent.createAgent", map[string]any{
			"name":         fmt.Sprintf("Agent %d", i),
			"description":  "d",
			"category":     "DevOps",
			"billingModel": "per-task",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var a domain.Agent
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
		rec = rpc(t, app, admin, "agent.publishAgent", map[string]any{"id": a.ID})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := rpc(t, app, nil, "marketplace.listAgents", map[string]any{"limit": 2, "offset": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Agents []domain.Agent `json:"agents"`
		Total  int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Agents, 2)
	assert.Equal(t, 2, page.Total)
}
