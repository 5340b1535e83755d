package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dropDatabas3/idauth/internal/observability/logger"
	"github.com/dropDatabas3/idauth/internal/security/keygen"
	"github.com/dropDatabas3/idauth/internal/store/core"
)

// CreateApplicationInput es el alta de un tenant.
type CreateApplicationInput struct {
	Name        string `json:"name"`
	ImageURI    string `json:"image_uri,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateApplication registra una aplicación nueva con una API key generada
// de 32 caracteres. La key es única: ante la colisión (improbable) se
// regenera una vez.
func (s *Service) CreateApplication(ctx context.Context, in CreateApplicationInput) (*core.Application, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrInvalidAppName
	}

	app := &core.Application{
		Name:        in.Name,
		ImageURI:    in.ImageURI,
		Description: in.Description,
	}
	for attempt := 0; attempt < 2; attempt++ {
		app.Key = keygen.Key(keygen.DefaultKeyLength)
		created, err := s.store.CreateApplication(ctx, app)
		if err == nil {
			s.log.Info("application created", logger.AppID(created.ID))
			return created, nil
		}
		if !errors.Is(err, core.ErrDuplicateKey) {
			return nil, depErr(err)
		}
	}
	return nil, internalErr(core.ErrDuplicateKey)
}

// VerifyApplication valida el par (id, key) contra el store, con cache de
// verificaciones positivas. La comparación contra el cache es constant-time.
func (s *Service) VerifyApplication(ctx context.Context, id, key string) (*core.Application, error) {
	if id == "" || key == "" {
		return nil, ErrAppUnauthorized
	}

	cacheKey := "appverify:" + id
	if s.cache != nil {
		if b, ok := s.cache.Get(cacheKey); ok {
			var cached core.Application
			if json.Unmarshal(b, &cached) == nil &&
				subtle.ConstantTimeCompare([]byte(cached.Key), []byte(key)) == 1 {
				return &cached, nil
			}
		}
	}

	app, err := s.store.FindApplication(ctx, id, key)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrAppUnauthorized
		}
		return nil, depErr(err)
	}

	if s.cache != nil {
		if b, err := json.Marshal(app); err == nil {
			s.cache.Set(cacheKey, b, s.appVerifyTTL)
		}
	}
	return app, nil
}
