package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req services.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), userID, req)
	if err != nil {
		var verr *common.ValidationError
		if errors.As(err, &verr) {
			h.logger.Warn(r.Context(), "order validation failed", "user_id", userID, "errors", verr.Fields)
			writeValidation(w, verr)
			return
		}
		writeInternal(w, "Failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *Handler) showOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		writeInternal(w, "Failed to retrieve order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Summarize(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeInternal(w, "Failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
