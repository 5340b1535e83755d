package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/idauth/internal/auth"
	"github.com/dropDatabas3/idauth/internal/http/helpers"
)

// UsersHandler expone signup, signin, validación de token y lectura de
// usuarios. Todo user serializado sale redactado (el hash de password y los
// códigos pendientes nunca viajan, en ningún code path).
type UsersHandler struct {
	Svc *auth.Service
}

func (h *UsersHandler) Register(r chi.Router) {
	r.Get("/user/{id}", h.get)
	r.Post("/user/signup", h.signup)
	r.Post("/user/signin", h.signin)
	r.Post("/user/validate", h.validate)
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, err := h.Svc.GetUser(r.Context(), id)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) signup(w http.ResponseWriter, r *http.Request) {
	var in auth.SignUpInput
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	res, err := h.Svc.SignUp(r.Context(), in)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, res)
}

type signinIn struct {
	// El front manda el identificador en "email" desde siempre; acepta
	// igual username o id.
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UsersHandler) signin(w http.ResponseWriter, r *http.Request) {
	var in signinIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	res, err := h.Svc.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, res)
}

type validateIn struct {
	Token string `json:"token"`
}

func (h *UsersHandler) validate(w http.ResponseWriter, r *http.Request) {
	var in validateIn
	if !helpers.ReadJSON(w, r, &in) {
		return
	}
	res, err := h.Svc.ValidateToken(r.Context(), in.Token)
	if err != nil {
		writeServiceErr(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, res)
}
