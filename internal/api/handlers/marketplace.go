package handlers

import (
	"errors"
	"net/http"

	"github.com/agentmart/agentmart/internal/service"
)

type MarketplaceHandler struct {
	svc *service.MarketplaceService
}

func NewMarketplaceHandler(svc *service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{svc: svc}
}

type listAgentsRequest struct {
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	Category string `json:"category"`
}

func (h *MarketplaceHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	var req listAgentsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	page, err := h.svc.ListAgents(r.Context(), req.Limit, req.Offset, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

type getAgentDetailRequest struct {
	AgentID int64 `json:"agentId"`
}

func (h *MarketplaceHandler) GetAgentDetail(w http.ResponseWriter, r *http.Request) {
	var req getAgentDetailRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	detail, err := h.svc.GetAgentDetail(r.Context(), req.AgentID)
	if err != nil {
		// Absent agents render as null, matching the public browse contract.
		if errors.Is(err, service.ErrAgentNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type searchAgentsRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

func (h *MarketplaceHandler) SearchAgents(w http.ResponseWriter, r *http.Request) {
	var req searchAgentsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	agents, err := h.svc.SearchAgents(r.Context(), req.Query, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *MarketplaceHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Categories())
}
