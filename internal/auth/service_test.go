package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/dropDatabas3/idauth/internal/cache/memory"
	"github.com/dropDatabas3/idauth/internal/jwt"
	"github.com/dropDatabas3/idauth/internal/store/core"
	memstore "github.com/dropDatabas3/idauth/internal/store/memory"
)

// fakeSender captura los mails salientes en vez de enviarlos.
type fakeSender struct {
	sent []sentMail
	fail error
}

type sentMail struct {
	to      string
	subject string
	html    string
	text    string
}

func (f *fakeSender) Send(to, subject, html, text string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

func (f *fakeSender) last(t *testing.T) sentMail {
	t.Helper()
	require.NotEmpty(t, f.sent, "no se envió ningún mail")
	return f.sent[len(f.sent)-1]
}

// countingStore cuenta lookups de aplicación para verificar el cache.
type countingStore struct {
	core.Repository
	findAppCalls int
}

func (c *countingStore) FindApplication(ctx context.Context, id, key string) (*core.Application, error) {
	c.findAppCalls++
	return c.Repository.FindApplication(ctx, id, key)
}

type testEnv struct {
	svc    *Service
	store  *memstore.Store
	sender *fakeSender
	codec  *jwt.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := memstore.New()
	snd := &fakeSender{}
	cd := jwt.NewCodec("test-secret")
	svc := NewService(st, cd, snd, cachemem.New(time.Minute))
	return &testEnv{svc: svc, store: st, sender: snd, codec: cd}
}

// signUp da de alta un usuario de prueba y devuelve el resultado.
func (e *testEnv) signUp(t *testing.T, username, pass, addr string) *AuthResult {
	t.Helper()
	res, err := e.svc.SignUp(context.Background(), SignUpInput{
		Username: username,
		Password: pass,
		Email:    addr,
	})
	require.NoError(t, err)
	return res
}

// storedUser lee el estado actual del usuario directo del store.
func (e *testEnv) storedUser(t *testing.T, id string) *core.User {
	t.Helper()
	u, err := e.store.FindUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func requireAuthErr(t *testing.T, err, want error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, want), "err = %v, want %v", err, want)
}
