// Package keygen genera los secretos cortos del sistema: API keys de
// aplicaciones y códigos de confirmación de email.
package keygen

import (
	"crypto/rand"
	"math/big"
)

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultKeyLength es el largo de las API keys de aplicación.
const DefaultKeyLength = 32

// Key genera una key opaca de n caracteres sobre [A-Z0-9].
// Usa crypto/rand; los llamadores dependen solo del formato.
func Key(n int) string {
	if n <= 0 {
		n = DefaultKeyLength
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = keyAlphabet[randInt(len(keyAlphabet))]
	}
	return string(out)
}

// ConfirmationCode genera un código numérico de exactamente 4 dígitos.
// El primer dígito nunca es 0, así el código no pierde largo al mostrarse.
func ConfirmationCode() string {
	out := make([]byte, 4)
	out[0] = byte('1' + randInt(9))
	for i := 1; i < 4; i++ {
		out[i] = byte('0' + randInt(10))
	}
	return string(out)
}

func randInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand no falla en plataformas soportadas; si falla,
		// no hay fuente de entropía y no podemos emitir secretos.
		panic(err)
	}
	return int(n.Int64())
}
