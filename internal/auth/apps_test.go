package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/dropDatabas3/idauth/internal/cache/memory"
	"github.com/dropDatabas3/idauth/internal/jwt"
	memstore "github.com/dropDatabas3/idauth/internal/store/memory"
)

var appKeyRe = regexp.MustCompile(`^[A-Z0-9]{32}$`)

func TestCreateApplication(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	app, err := e.svc.CreateApplication(ctx, CreateApplicationInput{
		Name:        "mi-frontend",
		Description: "SPA de prueba",
	})
	require.NoError(t, err)
	require.NotEmpty(t, app.ID)
	require.Equal(t, "mi-frontend", app.Name)
	require.Regexp(t, appKeyRe, app.Key)

	// cada alta genera una key distinta
	other, err := e.svc.CreateApplication(ctx, CreateApplicationInput{Name: "otro"})
	require.NoError(t, err)
	require.NotEqual(t, app.Key, other.Key)
}

func TestCreateApplicationRequiresName(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.svc.CreateApplication(context.Background(), CreateApplicationInput{Name: "   "})
	requireAuthErr(t, err, ErrInvalidAppName)
}

func TestVerifyApplication(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	app, err := e.svc.CreateApplication(ctx, CreateApplicationInput{Name: "mi-frontend"})
	require.NoError(t, err)

	got, err := e.svc.VerifyApplication(ctx, app.ID, app.Key)
	require.NoError(t, err)
	require.Equal(t, app.ID, got.ID)

	_, err = e.svc.VerifyApplication(ctx, app.ID, "KEYINCORRECTA000000000000000000X")
	requireAuthErr(t, err, ErrAppUnauthorized)

	_, err = e.svc.VerifyApplication(ctx, "000000000000000000000000", app.Key)
	requireAuthErr(t, err, ErrAppUnauthorized)

	_, err = e.svc.VerifyApplication(ctx, "", "")
	requireAuthErr(t, err, ErrAppUnauthorized)
}

func TestVerifyApplicationUsesCache(t *testing.T) {
	counting := &countingStore{Repository: memstore.New()}
	svc := NewService(counting, jwt.NewCodec("test-secret"), &fakeSender{}, cachemem.New(time.Minute))
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, CreateApplicationInput{Name: "mi-frontend"})
	require.NoError(t, err)

	_, err = svc.VerifyApplication(ctx, app.ID, app.Key)
	require.NoError(t, err)
	require.Equal(t, 1, counting.findAppCalls)

	// la segunda verificación sale del cache
	_, err = svc.VerifyApplication(ctx, app.ID, app.Key)
	require.NoError(t, err)
	require.Equal(t, 1, counting.findAppCalls)

	// una key incorrecta no matchea el cache y cae al store
	_, err = svc.VerifyApplication(ctx, app.ID, "KEYINCORRECTA000000000000000000X")
	requireAuthErr(t, err, ErrAppUnauthorized)
	require.Equal(t, 2, counting.findAppCalls)
}

func TestVerifyApplicationWithoutCache(t *testing.T) {
	svc := NewService(memstore.New(), jwt.NewCodec("test-secret"), &fakeSender{}, nil)
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, CreateApplicationInput{Name: "sin-cache"})
	require.NoError(t, err)

	got, err := svc.VerifyApplication(ctx, app.ID, app.Key)
	require.NoError(t, err)
	require.Equal(t, app.ID, got.ID)
}
