package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	c := NewCodec("test-secret")

	tok, err := c.Issue("64f1c0ffee64f1c0ffee64f1", "ana@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cl, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if cl.Subject != "64f1c0ffee64f1c0ffee64f1" {
		t.Fatalf("sub = %q", cl.Subject)
	}
	if cl.Email != "ana@example.com" {
		t.Fatalf("email = %q", cl.Email)
	}
	if got := cl.ExpiresAt.Sub(cl.IssuedAt); got != SessionTTL {
		t.Fatalf("vigencia = %v, want %v", got, SessionTTL)
	}
}

func TestVerifyExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := NewCodec("test-secret").WithNow(func() time.Time { return now })

	tok, err := c.Issue("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	now = base.Add(SessionTTL - time.Minute)
	if _, err := c.Verify(tok); err != nil {
		t.Fatalf("token aún vigente rechazado: %v", err)
	}

	now = base.Add(SessionTTL + time.Minute)
	if _, err := c.Verify(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewCodec("secret-a").Issue("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewCodec("secret-b").Verify(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	c := NewCodec("test-secret")
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := c.Verify(tok); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q) err = %v, want ErrMalformed", tok, err)
		}
	}
}

func TestVerifyEmptySubject(t *testing.T) {
	c := NewCodec("test-secret")
	tok, err := c.Issue("", "nobody@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := c.Verify(tok); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}
