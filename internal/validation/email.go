// Package validation contiene validadores sintácticos de inputs de usuario.
package validation

import "regexp"

// Mismo patrón que usa el resto del sistema desde siempre: local-part de al
// menos 2 caracteres, labels de dominio alfanuméricos de al menos 2.
var emailRe = regexp.MustCompile(`^[a-z0-9._-]{2,}@[a-z0-9]{2,}\.[a-z0-9]{2,}(\.[a-z0-9]{2,})*$`)

// ValidEmail reporta si s tiene formato de email aceptado.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
