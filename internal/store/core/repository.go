// Package core define los tipos de dominio y el contrato Repository que
// implementan los adapters de almacenamiento.
package core

import "context"

// Repository es el oráculo durable de usuarios y aplicaciones.
//
// El set de lookups es cerrado y nominal a propósito: ningún caller arma
// filtros ad-hoc, así la forma del query language no se filtra al core.
// Todas las búsquedas sin match devuelven ErrNotFound, nunca un usuario nil
// con error nil.
type Repository interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// FindUserByID busca por id exacto.
	FindUserByID(ctx context.Context, id string) (*User, error)
	// FindUserByUsernameOrEmail busca por username o por email.address.
	FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	// FindUserByEmail busca por email.address.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	// FindUserByEmailAndCode exige match simultáneo de email.address y
	// email.confirmation_code (dual-match: es el único gate de autorización
	// de los flujos de confirmación/reset).
	FindUserByEmailAndCode(ctx context.Context, email, code string) (*User, error)

	// CreateUser persiste un usuario nuevo. ErrDuplicateUsername si el
	// username ya existe.
	CreateUser(ctx context.Context, u *User) (*User, error)
	// UpdateUser aplica un update parcial y devuelve el registro resultante.
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error)

	// FindApplication exige match exacto de (id, key).
	FindApplication(ctx context.Context, id, key string) (*Application, error)
	// CreateApplication persiste una aplicación nueva. ErrDuplicateKey si la
	// key generada ya existe (unicidad de key sí se garantiza).
	CreateApplication(ctx context.Context, a *Application) (*Application, error)
}
