// Package handlers expone las operaciones del core por HTTP (chi).
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/idauth/internal/auth"
	"github.com/dropDatabas3/idauth/internal/http/helpers"
)

// AppsHandler expone alta y verificación de aplicaciones (tenants).
type AppsHandler struct {
	Svc *auth.Service
}

func (h *AppsHandler) Register(r chi.Router) {
	r.Post("/app", h.create)
	r.Post("/app/verify", h.verify)
}

func (h *AppsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in auth.CreateApplicationInput
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	app, err := h.Svc.CreateApplication(r.Context(), in)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, app)
}

type verifyAppIn struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

func (h *AppsHandler) verify(w http.ResponseWriter, r *http.Request) {
	var in verifyAppIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	app, err := h.Svc.VerifyApplication(r.Context(), in.ID, in.Key)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusAccepted, app)
}
