// Package memory implementa core.Repository en memoria.
// Pensado para tests y para correr en dev sin base de datos.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/idauth/internal/store/core"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]*core.User        // por id
	apps  map[string]*core.Application // por id
}

func New() *Store {
	return &Store{
		users: make(map[string]*core.User),
		apps:  make(map[string]*core.Application),
	}
}

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }

func cloneUser(u *core.User) *core.User {
	cp := *u
	cp.ResetHistory = append([]core.ResetRecord(nil), u.ResetHistory...)
	return &cp
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, core.ErrNotFound
}

func (s *Store) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == identifier || (u.Email.Address != "" && u.Email.Address == identifier) {
			return cloneUser(u), nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email.Address != "" && u.Email.Address == email {
			return cloneUser(u), nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) FindUserByEmailAndCode(ctx context.Context, email, code string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email.Address == email && u.Email.ConfirmationCode != "" && u.Email.ConfirmationCode == code {
			return cloneUser(u), nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return nil, core.ErrDuplicateUsername
		}
	}
	cp := cloneUser(u)
	if cp.ID == "" {
		cp.ID = core.NewID()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.users[cp.ID] = cp
	return cloneUser(cp), nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd core.UserUpdate) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.LastLogin != nil {
		u.LastLogin = *upd.LastLogin
	}
	if upd.AppendReset != nil {
		u.ResetHistory = append(u.ResetHistory, *upd.AppendReset)
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (s *Store) FindApplication(ctx context.Context, id, key string) (*core.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.apps[id]; ok && a.Key == key {
		cp := *a
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (s *Store) CreateApplication(ctx context.Context, a *core.Application) (*core.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing.Key == a.Key {
			return nil, core.ErrDuplicateKey
		}
	}
	cp := *a
	if cp.ID == "" {
		cp.ID = core.NewID()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.apps[cp.ID] = &cp
	out := cp
	return &out, nil
}
