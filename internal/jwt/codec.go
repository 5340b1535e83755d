// Package jwt emite y verifica los session tokens del servicio.
//
// Los tokens son HS256 firmados con un secreto único del servidor, stateless:
// no hay lista de revocación, un token filtrado vale hasta su expiración
// natural (limitación conocida y documentada).
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// SessionTTL es la vigencia de un session token.
const SessionTTL = 7 * 24 * time.Hour

var (
	// ErrMalformed indica un token estructuralmente inválido.
	ErrMalformed = errors.New("jwt: malformed token")
	// ErrInvalidSignature indica firma alterada o secreto distinto.
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	// ErrExpired indica un token vencido.
	ErrExpired = errors.New("jwt: token expired")
)

// Claims es el claim set de un session token.
type Claims struct {
	// Subject es el id del usuario.
	Subject string
	// Email es el email (o username si no hay email vinculado) del usuario.
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec firma y verifica session tokens con un secreto inyectado al arranque.
type Codec struct {
	secret []byte
	ttl    time.Duration

	// now es inyectable para tests de expiración.
	now func() time.Time
}

// NewCodec crea un Codec con el TTL por defecto de 7 días.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
}

// WithNow reemplaza la fuente de tiempo. Solo para tests.
func (c *Codec) WithNow(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue firma un claim set para el usuario dado, con exp = now + TTL.
func (c *Codec) Issue(subject, email string) (string, error) {
	now := c.now().UTC()
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	})
	return tk.SignedString(c.secret)
}

// Verify valida firma y expiración y devuelve los claims.
// Nunca devuelve claims de un token no verificado.
func (c *Codec) Verify(token string) (*Claims, error) {
	parsed, err := jwtv5.Parse(token,
		func(t *jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithTimeFunc(c.now),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtv5.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	mc, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}

	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	if sub == "" {
		return nil, ErrMalformed
	}

	cl := &Claims{Subject: sub, Email: email}
	if v, err := mc.GetIssuedAt(); err == nil && v != nil {
		cl.IssuedAt = v.Time
	}
	if v, err := mc.GetExpirationTime(); err == nil && v != nil {
		cl.ExpiresAt = v.Time
	}
	return cl, nil
}
