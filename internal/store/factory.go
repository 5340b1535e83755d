// Package store abre el core.Repository según el driver configurado.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/idauth/internal/store/core"
	"github.com/dropDatabas3/idauth/internal/store/memory"
	storemongo "github.com/dropDatabas3/idauth/internal/store/mongo"
	storepg "github.com/dropDatabas3/idauth/internal/store/pg"
)

type Config struct {
	Driver string
	Mongo  struct {
		URI      string
		Database string
	}
	Postgres struct {
		DSN             string
		MaxConns        int
		ConnMaxLifetime string
		Migrate         bool
	}
}

// Open devuelve el repositorio para el driver pedido.
// "memory" existe para dev y tests; no persiste nada.
func Open(ctx context.Context, cfg Config) (core.Repository, error) {
	switch strings.ToLower(cfg.Driver) {
	case "mongo", "mongodb", "":
		return storemongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case "postgres", "pg", "postgresql":
		s, err := storepg.New(ctx, cfg.Postgres.DSN, storepg.PoolConfig{
			MaxConns:        cfg.Postgres.MaxConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.Migrate {
			if err := s.Migrate(ctx); err != nil {
				_ = s.Close(ctx)
				return nil, fmt.Errorf("pg migrate: %w", err)
			}
		}
		return s, nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
