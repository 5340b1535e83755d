// Package auth implementa el núcleo del servicio: credenciales, session
// tokens y el ciclo de vida de los códigos de verificación de email.
//
// Cada operación es una unidad de trabajo independiente: el único recurso
// compartido es el store, del que se asume read-modify-write atómico por
// documento pero ningún lock entre operaciones. Dos requests concurrentes de
// código para el mismo email compiten y gana el último escritor; es una
// limitación aceptada.
package auth

import (
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/idauth/internal/cache"
	"github.com/dropDatabas3/idauth/internal/email"
	"github.com/dropDatabas3/idauth/internal/jwt"
	"github.com/dropDatabas3/idauth/internal/observability/logger"
	"github.com/dropDatabas3/idauth/internal/store/core"
)

// Service agrupa las operaciones del core sobre colaboradores inyectados.
type Service struct {
	store  core.Repository
	codec  *jwt.Codec
	mailer email.Sender
	cache  cache.Cache
	log    *zap.Logger

	appVerifyTTL time.Duration
}

// Option configura el Service.
type Option func(*Service)

// WithAppVerifyTTL cambia cuánto vive una verificación positiva de
// aplicación en cache.
func WithAppVerifyTTL(d time.Duration) Option {
	return func(s *Service) { s.appVerifyTTL = d }
}

func NewService(store core.Repository, codec *jwt.Codec, mailer email.Sender, c cache.Cache, opts ...Option) *Service {
	s := &Service{
		store:        store,
		codec:        codec,
		mailer:       mailer,
		cache:        c,
		log:          logger.Named("auth"),
		appVerifyTTL: 5 * time.Minute,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AuthResult es lo que devuelven signup/signin/validate: el usuario (ya
// redactado al serializar) y un session token fresco.
type AuthResult struct {
	User  *core.User `json:"user"`
	Token string     `json:"token"`
}

// tokenIdentity arma el claim de identidad: email vinculado, o username si
// el usuario todavía no vinculó una dirección.
func tokenIdentity(u *core.User) string {
	if u.Email.Address != "" {
		return u.Email.Address
	}
	return u.Username
}

func (s *Service) issueToken(u *core.User) (string, *Error) {
	tok, err := s.codec.Issue(u.ID, tokenIdentity(u))
	if err != nil {
		return "", internalErr(err)
	}
	return tok, nil
}
