package handlers

import (
	"net/http"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/service"
)

type DeploymentHandler struct {
	svc *service.DeploymentService
}

func NewDeploymentHandler(svc *service.DeploymentService) *DeploymentHandler {
	return &DeploymentHandler{svc: svc}
}

func (h *DeploymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req service.CreateDeploymentInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if !req.DeploymentType.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid deployment type")
		return
	}
	if req.CloudProvider != nil && !req.CloudProvider.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid cloud provider")
		return
	}

	deployment, err := h.svc.Create(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deployment)
}

func (h *DeploymentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	deployments, err := h.svc.List(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deployments)
}

type getDeploymentRequest struct {
	ID int64 `json:"id"`
}

func (h *DeploymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req getDeploymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	detail, err := h.svc.Get(r.Context(), user, req.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type updateDeploymentStatusRequest struct {
	ID     int64                   `json:"id"`
	Status domain.DeploymentStatus `json:"status"`
}

func (h *DeploymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req updateDeploymentStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid deployment status")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), user, req.ID, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
