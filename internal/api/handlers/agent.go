package handlers

import (
	"net/http"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/service"
)

type AgentHandler struct {
	svc *service.AgentService
}

func NewAgentHandler(svc *service.AgentService) *AgentHandler {
	return &AgentHandler{svc: svc}
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req service.CreateAgentInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "name is required")
		return
	}
	if !req.BillingModel.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid billing model")
		return
	}

	agent, err := h.svc.Create(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

type updateAgentRequest struct {
	ID int64 `json:"id"`
	domain.AgentPatch
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req updateAgentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), user, req.ID, req.AgentPatch); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type publishAgentRequest struct {
	ID int64 `json:"id"`
}

func (h *AgentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req publishAgentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Publish(r.Context(), user, req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AgentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	agents, err := h.svc.ListMine(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}
