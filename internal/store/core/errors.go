package core

import "errors"

var (
	// ErrNotFound indica que no existe registro que matchee la búsqueda.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateUsername indica violación de unicidad de username.
	ErrDuplicateUsername = errors.New("store: duplicate username")
	// ErrDuplicateKey indica colisión de API key de aplicación.
	ErrDuplicateKey = errors.New("store: duplicate application key")
)
