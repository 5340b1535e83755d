// Package password encapsula el hashing de passwords de usuarios.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost es el work factor fijo de bcrypt.
const Cost = 10

// ErrMalformedHash indica que el hash almacenado no es un hash bcrypt válido.
var ErrMalformedHash = errors.New("password: malformed stored hash")

// Hash devuelve el hash bcrypt (salteado) del plaintext.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara plaintext contra un hash almacenado.
// Mismatch retorna false sin error; solo un hash malformado produce error.
func Verify(plain, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedHash
	}
}
