package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/agentmart/agentmart/internal/api/handlers"
	mw "github.com/agentmart/agentmart/internal/api/middleware"
	"github.com/agentmart/agentmart/internal/auth"
	"github.com/agentmart/agentmart/internal/config"
	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/service"
	"github.com/agentmart/agentmart/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and the process-wide request counters.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires stores, services, and handlers into the RPC router. pool may
// be nil when the process runs without a database; health then reports
// degraded.
func NewApp(stores store.Stores, pool *pgxpool.Pool, sessions *auth.Sessions, logger *zap.Logger) *App {
	// Services
	identitySvc := service.NewIdentityService(stores.Users, logger)
	marketplaceSvc := service.NewMarketplaceService(stores.Agents)
	agentSvc := service.NewAgentService(stores.Agents)
	deploymentSvc := service.NewDeploymentService(stores.Deployments)
	billingSvc := service.NewBillingService(stores.Subscriptions)

	// Handlers
	authHandler := handlers.NewAuthHandler(sessions, identitySvc)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceSvc)
	agentHandler := handlers.NewAgentHandler(agentSvc)
	deploymentHandler := handlers.NewDeploymentHandler(deploymentSvc)
	billingHandler := handlers.NewBillingHandler(billingSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))
	r.Use(mw.Session(sessions, stores.Users))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler(pool))
	r.Get("/metrics", app.metricsHandler())

	// Sign-in hook for the external OAuth callback; upserts the user and
	// issues the session cookie.
	r.Post("/auth/callback", authHandler.Callback)

	// RPC surface: POST /rpc/<namespace>.<procedure>, JSON in, JSON out.
	r.Route("/rpc", func(r chi.Router) {
		r.Post("/system.health", healthHandler(pool))

		r.Post("/auth.me", authHandler.Me)
		r.Post("/auth.logout", authHandler.Logout)

		r.Post("/marketplace.listAgents", marketplaceHandler.ListAgents)
		r.Post("/marketplace.getAgentDetail", marketplaceHandler.GetAgentDetail)
		r.Post("/marketplace.searchAgents", marketplaceHandler.SearchAgents)
		r.Post("/marketplace.getCategories", marketplaceHandler.GetCategories)

		r.Post("/agent.createAgent", agentHandler.Create)
		r.Post("/agent.updateAgent", agentHandler.Update)
		r.Post("/agent.publishAgent", agentHandler.Publish)
		r.Post("/agent.getMyAgents", agentHandler.ListMine)

		r.Post("/deployment.createDeployment", deploymentHandler.Create)
		r.Post("/deployment.listDeployments", deploymentHandler.List)
		r.Post("/deployment.getDeployment", deploymentHandler.Get)
		r.Post("/deployment.updateDeploymentStatus", deploymentHandler.UpdateStatus)

		r.Post("/billing.listSubscriptions", billingHandler.ListSubscriptions)
		r.Post("/billing.createSubscription", billingHandler.CreateSubscription)
		r.Post("/billing.cancelSubscription", billingHandler.CancelSubscription)
		r.Post("/billing.listInvoices", billingHandler.ListInvoices)
	})

	return app
}

func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if pool == nil {
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "database": "unconfigured"})
			return
		}
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure store implementations satisfy the domain interfaces at compile time.
var (
	_ domain.UserStore         = (*store.UserStore)(nil)
	_ domain.UserStore         = (*store.NullUserStore)(nil)
	_ domain.AgentStore        = (*store.AgentStore)(nil)
	_ domain.AgentStore        = (*store.NullAgentStore)(nil)
	_ domain.DeploymentStore   = (*store.DeploymentStore)(nil)
	_ domain.DeploymentStore   = (*store.NullDeploymentStore)(nil)
	_ domain.SubscriptionStore = (*store.SubscriptionStore)(nil)
	_ domain.SubscriptionStore = (*store.NullSubscriptionStore)(nil)
)
