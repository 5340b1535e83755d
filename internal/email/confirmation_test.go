package email

import (
	"errors"
	"testing"
)

type captureSender struct {
	to, subject, html, text string
	fail                    error
}

func (c *captureSender) Send(to, subject, html, text string) error {
	if c.fail != nil {
		return c.fail
	}
	c.to, c.subject, c.html, c.text = to, subject, html, text
	return nil
}

func TestSendConfirmationCode(t *testing.T) {
	s := &captureSender{}
	if err := SendConfirmationCode(s, "ana@example.com", "4821"); err != nil {
		t.Fatalf("SendConfirmationCode: %v", err)
	}
	if s.to != "ana@example.com" {
		t.Fatalf("to = %q", s.to)
	}
	if s.subject != "Código de confirmação" {
		t.Fatalf("subject = %q", s.subject)
	}
	want := "IDA-4821 é o código de confirmação para sua conta no IDA."
	if s.text != want {
		t.Fatalf("body = %q, want %q", s.text, want)
	}
	if s.html != s.text {
		t.Fatal("las partes html y texto difieren")
	}
}

func TestSendConfirmationCodePropagatesError(t *testing.T) {
	s := &captureSender{fail: errors.New("smtp down")}
	if err := SendConfirmationCode(s, "ana@example.com", "4821"); err == nil {
		t.Fatal("el error del sender no se propagó")
	}
}
