package handlers

import (
	"net/http"

	"github.com/agentmart/agentmart/internal/service"
)

type BillingHandler struct {
	svc *service.BillingService
}

func NewBillingHandler(svc *service.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

func (h *BillingHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	subs, err := h.svc.ListSubscriptions(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *BillingHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req service.CreateSubscriptionInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if !req.BillingModel.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid billing model")
		return
	}

	sub, err := h.svc.CreateSubscription(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

type cancelSubscriptionRequest struct {
	ID int64 `json:"id"`
}

func (h *BillingHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req cancelSubscriptionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	if err := h.svc.CancelSubscription(r.Context(), user, req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	invoices, err := h.svc.ListInvoices(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}
