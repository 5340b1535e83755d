package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/idauth/internal/http/helpers"
	"github.com/dropDatabas3/idauth/internal/store/core"
)

// HealthHandler responde readiness chequeando el store.
type HealthHandler struct {
	Store core.Repository
}

func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/healthz", h.healthz)
}

func (h *HealthHandler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "store unavailable"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
