package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dropDatabas3/idauth/internal/metrics"
	"github.com/dropDatabas3/idauth/internal/observability/logger"
)

// WithAccessLog loggea cada request y alimenta las métricas HTTP.
func WithAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		dur := time.Since(start)
		path := routePattern(r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(dur.Seconds())

		logger.From(r.Context()).Info("http request",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Status(ww.Status()),
			logger.Duration(dur),
			logger.ClientIP(r.RemoteAddr),
		)
	})
}

// routePattern usa el pattern de chi ("/user/{id}") para no explotar la
// cardinalidad de las métricas con paths concretos.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
