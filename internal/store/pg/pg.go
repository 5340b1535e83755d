// Package pg implementa core.Repository sobre Postgres (pgx).
// Adapter alternativo para despliegues sin Mongo; el binding de email vive en
// columnas planas y el historial de resets en JSONB.
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/idauth/internal/store/core"
)

type Store struct {
	pool *pgxpool.Pool
}

type PoolConfig struct {
	MaxConns        int
	ConnMaxLifetime string
}

func New(ctx context.Context, dsn string, pc PoolConfig) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse dsn: %w", err)
	}
	if pc.MaxConns > 0 {
		cfg.MaxConns = int32(pc.MaxConns)
	}
	if pc.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(pc.ConnMaxLifetime); err == nil {
			cfg.MaxConnLifetime = d
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

// Migrate crea el esquema si no existe. Se habilita con flags.migrate.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS app_user (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password      TEXT NOT NULL,
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    email_address TEXT NOT NULL DEFAULT '',
    email_code    TEXT NOT NULL DEFAULT '',
    email_valid   BOOLEAN NOT NULL DEFAULT FALSE,
    phone_number  BIGINT NOT NULL DEFAULT 0,
    phone_area    INT NOT NULL DEFAULT 0,
    phone_code    TEXT NOT NULL DEFAULT '',
    phone_valid   BOOLEAN NOT NULL DEFAULT FALSE,
    reset_history JSONB NOT NULL DEFAULT '[]',
    last_login    TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS app_user_email_idx ON app_user (email_address);

CREATE TABLE IF NOT EXISTS application (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    key         TEXT NOT NULL UNIQUE,
    image_uri   TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`)
	return err
}

const userCols = `id, username, password, active,
	email_address, email_code, email_valid,
	phone_number, phone_area, phone_code, phone_valid,
	reset_history, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	var history []byte
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Active,
		&u.Email.Address, &u.Email.ConfirmationCode, &u.Email.Valid,
		&u.Phone.Number, &u.Phone.AreaCode, &u.Phone.ConfirmationCode, &u.Phone.Valid,
		&history, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &u.ResetHistory); err != nil {
			return nil, fmt.Errorf("pg decode reset_history: %w", err)
		}
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (s *Store) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE username = $1 OR email_address = $1`, identifier))
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE email_address = $1`, email))
}

func (s *Store) FindUserByEmailAndCode(ctx context.Context, email, code string) (*core.User, error) {
	if code == "" {
		return nil, core.ErrNotFound
	}
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE email_address = $1 AND email_code = $2`, email, code))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	id := u.ID
	if id == "" {
		id = core.NewID()
	}
	row := s.pool.QueryRow(ctx, `
INSERT INTO app_user (id, username, password, active,
    email_address, email_code, email_valid, last_login)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+userCols,
		id, u.Username, u.PasswordHash, u.Active,
		u.Email.Address, u.Email.ConfirmationCode, u.Email.Valid, u.LastLogin,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.ErrDuplicateUsername
		}
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd core.UserUpdate) (*core.User, error) {
	// Update parcial: solo pisa lo provisto, updated_at siempre.
	sets := []string{"updated_at = now()"}
	args := []any{id}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if upd.Email != nil {
		sets = append(sets,
			"email_address = "+arg(upd.Email.Address),
			"email_code = "+arg(upd.Email.ConfirmationCode),
			"email_valid = "+arg(upd.Email.Valid),
		)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password = "+arg(*upd.PasswordHash))
	}
	if upd.LastLogin != nil {
		sets = append(sets, "last_login = "+arg(*upd.LastLogin))
	}
	if upd.AppendReset != nil {
		rec, err := json.Marshal(upd.AppendReset)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "reset_history = reset_history || "+arg(rec)+"::jsonb")
	}

	q := "UPDATE app_user SET " + strings.Join(sets, ", ") + " WHERE id = $1 RETURNING " + userCols
	return scanUser(s.pool.QueryRow(ctx, q, args...))
}

func (s *Store) FindApplication(ctx context.Context, id, key string) (*core.Application, error) {
	var a core.Application
	err := s.pool.QueryRow(ctx, `
SELECT id, name, key, image_uri, description, created_at, updated_at
  FROM application WHERE id = $1 AND key = $2`, id, key).Scan(
		&a.ID, &a.Name, &a.Key, &a.ImageURI, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateApplication(ctx context.Context, a *core.Application) (*core.Application, error) {
	id := a.ID
	if id == "" {
		id = core.NewID()
	}
	var created core.Application
	err := s.pool.QueryRow(ctx, `
INSERT INTO application (id, name, key, image_uri, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, key, image_uri, description, created_at, updated_at`,
		id, a.Name, a.Key, a.ImageURI, a.Description,
	).Scan(&created.ID, &created.Name, &created.Key, &created.ImageURI,
		&created.Description, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.ErrDuplicateKey
		}
		return nil, err
	}
	return &created, nil
}
