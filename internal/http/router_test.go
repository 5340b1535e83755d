package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/idauth/internal/auth"
	cachemem "github.com/dropDatabas3/idauth/internal/cache/memory"
	"github.com/dropDatabas3/idauth/internal/email"
	httpx "github.com/dropDatabas3/idauth/internal/http"
	"github.com/dropDatabas3/idauth/internal/jwt"
	memstore "github.com/dropDatabas3/idauth/internal/store/memory"
)

type testServer struct {
	handler http.Handler
	store   *memstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := memstore.New()
	svc := auth.NewService(st, jwt.NewCodec("test-secret"), email.NoopSender{}, cachemem.New(time.Minute))
	h := httpx.NewRouter(httpx.RouterDeps{Svc: svc, Store: st, ExposeMetrics: true})
	return &testServer{handler: h, store: st}
}

func (s *testServer) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestSignupSigninValidateEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, "/user/signup", map[string]string{
		"username": "ana",
		"password": "secreta22",
		"email":    "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var signup struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	decode(t, rec, &signup)
	require.NotEmpty(t, signup.Token)
	require.Equal(t, "ana", signup.User["username"])
	require.NotContains(t, signup.User, "password", "el hash jamás viaja en la respuesta")

	rec = s.post(t, "/user/signin", map[string]string{
		"email":    "ana",
		"password": "secreta22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var signin struct {
		Token string `json:"token"`
	}
	decode(t, rec, &signin)

	rec = s.post(t, "/user/validate", map[string]string{"token": signin.Token})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestSigninFailureStatus(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, "/user/signin", map[string]string{"email": "nadie", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "signin/invalid-credentials", body["error"])
}

func TestSignupConflictStatus(t *testing.T) {
	s := newTestServer(t)
	in := map[string]string{"username": "ana", "password": "secreta22"}

	require.Equal(t, http.StatusCreated, s.post(t, "/user/signup", in).Code)

	rec := s.post(t, "/user/signup", in)
	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "signup/duplicated-user", body["error"])
}

func TestGetUserEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, "/user/signup", map[string]string{"username": "ana", "password": "secreta22"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, rec, &signup)

	rec = s.get(t, "/user/"+signup.User.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.get(t, "/user/ana")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.get(t, "/user/nadie")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmailFlowEndpoints(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	rec := s.post(t, "/user/signup", map[string]string{
		"username": "ana",
		"password": "secreta22",
		"email":    "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, rec, &signup)

	rec = s.post(t, "/user/request-email-confirmation", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	// el código pendiente no viaja en la respuesta
	require.NotContains(t, rec.Body.String(), "confirmation_code")

	stored, err := s.store.FindUserByID(ctx, signup.User.ID)
	require.NoError(t, err)
	code := stored.Email.ConfirmationCode
	require.NotEmpty(t, code)

	rec = s.post(t, "/user/validate-email-code", map[string]string{
		"email": "ana@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var confirmed struct {
		Email struct {
			Valid bool `json:"valid"`
		} `json:"email"`
	}
	decode(t, rec, &confirmed)
	require.True(t, confirmed.Email.Valid)

	// código ya consumido
	rec = s.post(t, "/user/validate-email-code", map[string]string{
		"email": "ana@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "user/invalid-code", body["error"])
}

func TestResetPasswordEndpoints(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	rec := s.post(t, "/user/signup", map[string]string{
		"username": "ana",
		"password": "secreta22",
		"email":    "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, rec, &signup)

	rec = s.post(t, "/user/request-reset-password", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := s.store.FindUserByID(ctx, signup.User.ID)
	require.NoError(t, err)
	code := stored.Email.ConfirmationCode

	rec = s.post(t, "/user/validate-reset-password-code", map[string]string{
		"email": "ana@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.post(t, "/user/reset-password", map[string]string{
		"email":    "ana@example.com",
		"code":     code,
		"password": "nueva-clave",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.post(t, "/user/signin", map[string]string{"email": "ana", "password": "nueva-clave"})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAppEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, "/app", map[string]string{"name": "mi-frontend"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var app struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	decode(t, rec, &app)
	require.Len(t, app.Key, 32)

	rec = s.post(t, "/app/verify", map[string]string{"id": app.ID, "key": app.Key})
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = s.post(t, "/app/verify", map[string]string{"id": app.ID, "key": "MALA"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "app/unauthorized", body["error"])
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)

	// sin Content-Type JSON
	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "request/invalid-content-type", body["error"])

	// JSON roto
	req = httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	decode(t, rec, &body)
	require.Equal(t, "request/invalid-json", body["error"])
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.get(t, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := s.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
}
