// Package http arma el router del servicio.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/idauth/internal/auth"
	"github.com/dropDatabas3/idauth/internal/http/handlers"
	"github.com/dropDatabas3/idauth/internal/http/middlewares"
	"github.com/dropDatabas3/idauth/internal/store/core"
)

// RouterDeps son las dependencias del router.
type RouterDeps struct {
	Svc   *auth.Service
	Store core.Repository

	CORSAllowedOrigins []string
	ExposeMetrics      bool
}

// NewRouter registra todos los endpoints con la cadena de middlewares
// estándar (request id, recover, CORS, access log + métricas).
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.WithRequestID)
	r.Use(middlewares.WithRecover)
	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.WithCORS(deps.CORSAllowedOrigins))
	}
	r.Use(middlewares.WithAccessLog)

	(&handlers.AppsHandler{Svc: deps.Svc}).Register(r)
	(&handlers.UsersHandler{Svc: deps.Svc}).Register(r)
	(&handlers.EmailFlowsHandler{Svc: deps.Svc}).Register(r)
	(&handlers.HealthHandler{Store: deps.Store}).Register(r)

	if deps.ExposeMetrics {
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	}

	return r
}
