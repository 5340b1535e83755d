// Package cache provee un cache de bytes con backend memoria o Redis.
// Hoy lo usa la verificación de aplicaciones para no golpear el store en
// cada request privilegiado.
package cache

import "time"

// Cache es la interfaz mínima que consumen los servicios.
type Cache interface {
	Get(k string) ([]byte, bool)
	Set(k string, v []byte, ttl time.Duration)
	Delete(k string)
}
