// Package middlewares contiene los middlewares HTTP del servicio.
package middlewares

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dropDatabas3/idauth/internal/observability/logger"
)

// WithRequestID asigna un request id (o respeta el del cliente), lo expone en
// la respuesta y deja un logger scoped en el contexto.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)

		l := logger.With(logger.RequestID(rid))
		next.ServeHTTP(w, r.WithContext(logger.ToContext(r.Context(), l)))
	})
}
