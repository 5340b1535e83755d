package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/idauth/internal/metrics"
	"github.com/dropDatabas3/idauth/internal/observability/logger"
	"github.com/dropDatabas3/idauth/internal/security/password"
	"github.com/dropDatabas3/idauth/internal/store/core"
	"github.com/dropDatabas3/idauth/internal/validation"
)

// findByIdentifier resuelve un identificador: 24-hex busca por id, cualquier
// otra cosa por username-o-email.
func (s *Service) findByIdentifier(ctx context.Context, identifier string) (*core.User, error) {
	if core.IsID(identifier) {
		return s.store.FindUserByID(ctx, identifier)
	}
	return s.store.FindUserByUsernameOrEmail(ctx, identifier)
}

// GetUser busca un usuario por id, username o email.
func (s *Service) GetUser(ctx context.Context, identifier string) (*core.User, error) {
	u, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, depErr(err)
	}
	return u, nil
}

// SignUpInput es el alta de un usuario nuevo.
type SignUpInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// SignUp registra un usuario y devuelve el usuario con un token fresco.
// Chequea duplicados antes de hashear para no pagar bcrypt de más.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || in.Password == "" {
		return nil, ErrInvalidSignup
	}
	if in.Email != "" && !validation.ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.store.FindUserByUsernameOrEmail(ctx, in.Username); err == nil {
		metrics.SignupsTotal.WithLabelValues("duplicated").Inc()
		return nil, ErrDuplicatedUser
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, depErr(err)
	}
	if in.Email != "" {
		if _, err := s.store.FindUserByEmail(ctx, in.Email); err == nil {
			metrics.SignupsTotal.WithLabelValues("duplicated").Inc()
			return nil, ErrDuplicatedUser
		} else if !errors.Is(err, core.ErrNotFound) {
			return nil, depErr(err)
		}
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, internalErr(err)
	}

	u := &core.User{
		Username:     in.Username,
		PasswordHash: hash,
		Active:       true,
		Email:        core.EmailBinding{Address: in.Email},
		LastLogin:    time.Now().UTC(),
	}
	created, err := s.store.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateUsername) {
			metrics.SignupsTotal.WithLabelValues("duplicated").Inc()
			return nil, ErrDuplicatedUser
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, depErr(err)
	}

	tok, terr := s.issueToken(created)
	if terr != nil {
		return nil, terr
	}
	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	s.log.Info("user signed up", logger.UserID(created.ID))
	return &AuthResult{User: created, Token: tok}, nil
}

// SignIn autentica por identificador + password.
// Usuario inexistente y password incorrecta devuelven el mismo error para no
// permitir enumeración de usernames.
func (s *Service) SignIn(ctx context.Context, identifier, plain string) (*AuthResult, error) {
	u, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			metrics.SigninsTotal.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, depErr(err)
	}

	ok, err := password.Verify(plain, u.PasswordHash)
	if err != nil {
		return nil, internalErr(err)
	}
	if !ok {
		metrics.SigninsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if updated, err := s.store.UpdateUser(ctx, u.ID, core.UserUpdate{LastLogin: &now}); err == nil {
		u = updated
	} else {
		// last_login es best-effort, no bloquea el login
		s.log.Warn("last_login update failed", logger.UserID(u.ID), logger.Err(err))
	}

	tok, terr := s.issueToken(u)
	if terr != nil {
		return nil, terr
	}
	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	return &AuthResult{User: u, Token: tok}, nil
}

// ValidateToken verifica un session token y devuelve el usuario con un token
// renovado (comportamiento histórico: validar también refresca).
func (s *Service) ValidateToken(ctx context.Context, token string) (*AuthResult, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidToken
	}

	u, err := s.findByIdentifier(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			metrics.TokenValidationsTotal.WithLabelValues("user_gone").Inc()
			return nil, ErrUserNotFound
		}
		return nil, depErr(err)
	}

	tok, terr := s.issueToken(u)
	if terr != nil {
		return nil, terr
	}
	metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
	return &AuthResult{User: u, Token: tok}, nil
}
