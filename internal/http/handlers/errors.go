package handlers

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/idauth/internal/auth"
	"github.com/dropDatabas3/idauth/internal/http/helpers"
	"github.com/dropDatabas3/idauth/internal/observability/logger"
)

// statusFor mapea la clasificación del core a status HTTP.
func statusFor(k auth.Kind) int {
	switch k {
	case auth.KindValidation:
		return http.StatusBadRequest
	case auth.KindNotFound:
		return http.StatusNotFound
	case auth.KindConflict:
		return http.StatusConflict
	case auth.KindAuth:
		return http.StatusUnauthorized
	case auth.KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceErr serializa un error del core. El cliente solo ve el código
// estable; el detalle interno va al log.
func writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	var ae *auth.Error
	if !errors.As(err, &ae) {
		logger.From(r.Context()).Error("unclassified error", logger.Err(err))
		helpers.WriteErrorJSON(w, http.StatusInternalServerError, "server/internal-error")
		return
	}
	if ae.Kind == auth.KindDependency || ae.Kind == auth.KindInternal {
		logger.From(r.Context()).Error("server fault", logger.String("code", ae.Code), logger.Err(err))
	}
	helpers.WriteErrorJSON(w, statusFor(ae.Kind), ae.Code)
}
