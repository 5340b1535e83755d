package auth

import "fmt"

// Kind clasifica un error para el caller (el mapeo a status HTTP vive en el
// layer de transporte). Dependency e Internal son fallas de servidor: el
// caller nunca recibe el detalle interno, solo la clasificación.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindAuth
	KindDependency
	KindInternal
)

// Error es el error tipado que devuelven todas las operaciones del servicio.
// Code es el código estable que ve el cliente (ej: "user/invalid-code").
type Error struct {
	Kind Kind
	Code string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.err)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.err }

// Is permite errors.Is contra los sentinels de abajo comparando por Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidEmail       = &Error{Kind: KindValidation, Code: "user/invalid-email"}
	ErrInvalidCode        = &Error{Kind: KindValidation, Code: "user/invalid-code"}
	ErrInvalidSignup      = &Error{Kind: KindValidation, Code: "signup/invalid-body"}
	ErrInvalidAppName     = &Error{Kind: KindValidation, Code: "app/invalid-name"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Code: "user/not-found"}
	ErrEmailNotFound      = &Error{Kind: KindNotFound, Code: "user/email-not-found"}
	ErrDuplicatedUser     = &Error{Kind: KindConflict, Code: "signup/duplicated-user"}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Code: "signin/invalid-credentials"}
	ErrInvalidToken       = &Error{Kind: KindAuth, Code: "signin/invalid-token"}
	ErrAppUnauthorized    = &Error{Kind: KindAuth, Code: "app/unauthorized"}
	ErrDeliveryFailed     = &Error{Kind: KindDependency, Code: "email/delivery-failed"}
)

// depErr envuelve una falla de store u otro colaborador externo.
func depErr(err error) *Error {
	return &Error{Kind: KindDependency, Code: "server/dependency-error", err: err}
}

// internalErr envuelve una falla de primitiva (hashing, firma).
func internalErr(err error) *Error {
	return &Error{Kind: KindInternal, Code: "server/internal-error", err: err}
}
