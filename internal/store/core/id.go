package core

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"sync/atomic"
	"time"
)

// Los ids son strings hex de 24 caracteres compatibles con ObjectID de Mongo
// (4 bytes timestamp + 5 bytes random de proceso + 3 bytes contador), para
// que la regla "24-hex resuelve por id" valga igual en todos los adapters.

var idRe = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsID reporta si s tiene forma de id.
func IsID(s string) bool { return idRe.MatchString(s) }

var (
	idProcess [5]byte
	idCounter uint32
)

func init() {
	if _, err := rand.Read(idProcess[:]); err != nil {
		panic(err)
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(err)
	}
	idCounter = binary.BigEndian.Uint32(seed[:])
}

// NewID genera un id nuevo.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(time.Now().Unix()))
	copy(b[4:9], idProcess[:])
	n := atomic.AddUint32(&idCounter, 1)
	b[9] = byte(n >> 16)
	b[10] = byte(n >> 8)
	b[11] = byte(n)
	return hex.EncodeToString(b[:])
}
