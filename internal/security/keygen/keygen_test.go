package keygen

import (
	"strings"
	"testing"
)

func TestKeyFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		k := Key(DefaultKeyLength)
		if len(k) != 32 {
			t.Fatalf("len = %d, want 32: %q", len(k), k)
		}
		for _, c := range k {
			if !strings.ContainsRune(keyAlphabet, c) {
				t.Fatalf("char %q fuera del alfabeto en %q", c, k)
			}
		}
	}
}

func TestKeyCustomLength(t *testing.T) {
	if got := len(Key(8)); got != 8 {
		t.Fatalf("len = %d, want 8", got)
	}
	// largo inválido cae al default
	if got := len(Key(0)); got != DefaultKeyLength {
		t.Fatalf("len = %d, want %d", got, DefaultKeyLength)
	}
}

func TestConfirmationCodeFormat(t *testing.T) {
	for i := 0; i < 500; i++ {
		c := ConfirmationCode()
		if len(c) != 4 {
			t.Fatalf("len = %d, want 4: %q", len(c), c)
		}
		if c[0] < '1' || c[0] > '9' {
			t.Fatalf("primer dígito %q no está en 1-9: %q", c[0], c)
		}
		for _, d := range c[1:] {
			if d < '0' || d > '9' {
				t.Fatalf("dígito %q no numérico en %q", d, c)
			}
		}
	}
}

func TestKeysNotRepeated(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k := Key(DefaultKeyLength)
		if seen[k] {
			t.Fatalf("key repetida: %q", k)
		}
		seen[k] = true
	}
}
