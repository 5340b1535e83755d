// Package logger provee un singleton de zap para todo el servicio.
//
// Uso:
//
//	logger.Init(logger.Config{Env: "prod", Level: "info"})
//	defer logger.Sync()
//	log := logger.Named("auth")
//	log.Info("signup ok", logger.UserID(id))
package logger
