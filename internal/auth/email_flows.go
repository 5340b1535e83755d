package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/idauth/internal/email"
	"github.com/dropDatabas3/idauth/internal/metrics"
	"github.com/dropDatabas3/idauth/internal/observability/logger"
	"github.com/dropDatabas3/idauth/internal/security/keygen"
	"github.com/dropDatabas3/idauth/internal/security/password"
	"github.com/dropDatabas3/idauth/internal/store/core"
	"github.com/dropDatabas3/idauth/internal/validation"
)

// Ciclo de vida del binding de email: UNSET → PENDING → CONFIRMED.
//
// Un código es single-use por construcción: confirmar o resetear lo borra, y
// pedir uno nuevo pisa el anterior. No hay ventana de expiración temporal
// (fiel al comportamiento original); un código vive hasta ser consumido o
// superseded.

func normalizeEmail(s string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(s))
	if !validation.ValidEmail(e) {
		return "", ErrInvalidEmail
	}
	return e, nil
}

// RequestEmailConfirmation emite un código fresco para la dirección dada y
// lo envía por mail. Persiste antes de enviar: si el envío falla, el binding
// ya quedó PENDING y el código sirve igual (se reporta DeliveryFailed).
func (s *Service) RequestEmailConfirmation(ctx context.Context, address string) (*core.User, error) {
	return s.issueCode(ctx, address, "confirm", func(core.EmailBinding) bool {
		// Un request de confirmación siempre deja el binding pendiente.
		return false
	})
}

// RequestPasswordReset emite y envía un código de reset. A diferencia de la
// confirmación, no des-confirma una dirección ya válida.
func (s *Service) RequestPasswordReset(ctx context.Context, address string) (*core.User, error) {
	return s.issueCode(ctx, address, "reset", func(b core.EmailBinding) bool {
		return b.Valid
	})
}

func (s *Service) issueCode(ctx context.Context, address, flow string, keepValid func(core.EmailBinding) bool) (*core.User, error) {
	addr, err := normalizeEmail(address)
	if err != nil {
		return nil, err
	}

	u, serr := s.store.FindUserByEmail(ctx, addr)
	if serr != nil {
		if errors.Is(serr, core.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, depErr(serr)
	}

	code := keygen.ConfirmationCode()
	binding := core.EmailBinding{
		Address:          addr,
		ConfirmationCode: code,
		Valid:            keepValid(u.Email),
	}
	updated, serr := s.store.UpdateUser(ctx, u.ID, core.UserUpdate{Email: &binding})
	if serr != nil {
		return nil, depErr(serr)
	}

	if err := email.SendConfirmationCode(s.mailer, addr, code); err != nil {
		// El código ya está persistido y es válido aunque el mail no llegue.
		metrics.ConfirmationEmailsTotal.WithLabelValues(flow, "delivery_failed").Inc()
		s.log.Warn("confirmation code delivery failed",
			logger.UserID(u.ID), logger.String("flow", flow), logger.Err(err))
		return updated, ErrDeliveryFailed
	}

	metrics.ConfirmationEmailsTotal.WithLabelValues(flow, "ok").Inc()
	s.log.Info("confirmation code sent", logger.UserID(u.ID), logger.String("flow", flow))
	return updated, nil
}

// ConfirmEmail consume un código de confirmación. El dual-match
// (address + code) es el único gate: si no matchea, el código es inválido o
// ya fue usado.
func (s *Service) ConfirmEmail(ctx context.Context, address, code string) (*core.User, error) {
	addr, err := normalizeEmail(address)
	if err != nil {
		return nil, err
	}

	u, serr := s.store.FindUserByEmailAndCode(ctx, addr, code)
	if serr != nil {
		if errors.Is(serr, core.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, depErr(serr)
	}

	binding := core.EmailBinding{Address: addr, Valid: true}
	updated, serr := s.store.UpdateUser(ctx, u.ID, core.UserUpdate{Email: &binding})
	if serr != nil {
		return nil, depErr(serr)
	}
	s.log.Info("email confirmed", logger.UserID(u.ID))
	return updated, nil
}

// ValidateResetCode chequea un código de reset sin consumirlo. Lo usa el
// front para validar el código antes de pedir la password nueva.
func (s *Service) ValidateResetCode(ctx context.Context, address, code string) (*core.User, error) {
	addr, err := normalizeEmail(address)
	if err != nil {
		return nil, err
	}
	u, serr := s.store.FindUserByEmailAndCode(ctx, addr, code)
	if serr != nil {
		if errors.Is(serr, core.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, depErr(serr)
	}
	return u, nil
}

// CompleteReset consume el código, instala la password nueva y deja la
// dirección confirmada. Si el hashing falla no se toca ningún estado.
func (s *Service) CompleteReset(ctx context.Context, address, code, newPassword string) (*core.User, error) {
	addr, err := normalizeEmail(address)
	if err != nil {
		return nil, err
	}

	u, serr := s.store.FindUserByEmailAndCode(ctx, addr, code)
	if serr != nil {
		if errors.Is(serr, core.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, depErr(serr)
	}

	hash, herr := password.Hash(newPassword)
	if herr != nil {
		return nil, internalErr(herr)
	}

	binding := core.EmailBinding{Address: addr, Valid: true}
	record := core.ResetRecord{
		PasswordHash: hash,
		Date:         time.Now().UTC(),
		UsedToken:    code,
	}
	updated, serr := s.store.UpdateUser(ctx, u.ID, core.UserUpdate{
		Email:        &binding,
		PasswordHash: &hash,
		AppendReset:  &record,
	})
	if serr != nil {
		return nil, depErr(serr)
	}
	s.log.Info("password reset completed", logger.UserID(u.ID))
	return updated, nil
}
