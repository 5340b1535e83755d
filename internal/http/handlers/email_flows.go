package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/idauth/internal/auth"
	"github.com/dropDatabas3/idauth/internal/http/helpers"
)

// EmailFlowsHandler expone el ciclo de confirmación de email y reset de
// password por código.
type EmailFlowsHandler struct {
	Svc *auth.Service
}

func (h *EmailFlowsHandler) Register(r chi.Router) {
	r.Post("/user/request-email-confirmation", h.requestConfirmation)
	r.Post("/user/validate-email-code", h.confirmEmail)
	r.Post("/user/request-reset-password", h.requestReset)
	r.Post("/user/validate-reset-password-code", h.validateResetCode)
	r.Post("/user/reset-password", h.resetPassword)
}

type emailIn struct {
	Email string `json:"email"`
}

type emailCodeIn struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetIn struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (h *EmailFlowsHandler) requestConfirmation(w http.ResponseWriter, r *http.Request) {
	var in emailIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	u, err := h.Svc.RequestEmailConfirmation(r.Context(), in.Email)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

func (h *EmailFlowsHandler) confirmEmail(w http.ResponseWriter, r *http.Request) {
	var in emailCodeIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	u, err := h.Svc.ConfirmEmail(r.Context(), in.Email, in.Code)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

func (h *EmailFlowsHandler) requestReset(w http.ResponseWriter, r *http.Request) {
	var in emailIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	u, err := h.Svc.RequestPasswordReset(r.Context(), in.Email)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

func (h *EmailFlowsHandler) validateResetCode(w http.ResponseWriter, r *http.Request) {
	var in emailCodeIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	u, err := h.Svc.ValidateResetCode(r.Context(), in.Email, in.Code)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

func (h *EmailFlowsHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	u, err := h.Svc.CompleteReset(r.Context(), in.Email, in.Code, in.Password)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}
