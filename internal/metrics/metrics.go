// Package metrics define los contadores Prometheus del servicio en un paquete
// aparte para evitar import cycles entre auth y HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idauth_signups_total",
		Help: "Altas de usuario por resultado",
	}, []string{"result"})

	SigninsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idauth_signins_total",
		Help: "Logins por resultado",
	}, []string{"result"})

	TokenValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idauth_token_validations_total",
		Help: "Validaciones de session token por resultado",
	}, []string{"result"})

	ConfirmationEmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idauth_confirmation_emails_total",
		Help: "Envíos de código de confirmación por resultado",
	}, []string{"flow", "result"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "idauth_http_requests_total",
		Help: "Requests HTTP por ruta y status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "idauth_http_request_duration_seconds",
		Help:    "Duración de requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Register registra todas las métricas en el registry dado (default si nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cs := []prometheus.Collector{
		SignupsTotal, SigninsTotal, TokenValidationsTotal,
		ConfirmationEmailsTotal, HTTPRequestsTotal, HTTPRequestDuration,
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
