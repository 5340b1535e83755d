package core

import "testing"

func TestIsID(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"64f1c0ffee64f1c0ffee64f1", true},
		{"64F1C0FFEE64F1C0FFEE64F1", true},
		{"000000000000000000000000", true},

		{"", false},
		{"ana", false},
		{"64f1c0ffee64f1c0ffee64f", false},   // 23 chars
		{"64f1c0ffee64f1c0ffee64f12", false}, // 25 chars
		{"g4f1c0ffee64f1c0ffee64f1", false},  // no-hex
		{"ana@example.com", false},
	}
	for _, c := range cases {
		if got := IsID(c.in); got != c.ok {
			t.Errorf("IsID(%q) = %v, want %v", c.in, got, c.ok)
		}
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if !IsID(id) {
			t.Fatalf("NewID() = %q no tiene forma de id", id)
		}
		if seen[id] {
			t.Fatalf("id repetido: %q", id)
		}
		seen[id] = true
	}
}
