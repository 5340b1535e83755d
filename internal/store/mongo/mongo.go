// Package mongo implementa core.Repository sobre MongoDB.
// Es el adapter primario: el sistema delega toda la persistencia a una base
// de documentos externa.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/idauth/internal/store/core"
)

type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	apps   *mongo.Collection
}

// New conecta al cluster y asegura los índices de unicidad.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	db := client.Database(database)
	s := &Store{
		client: client,
		users:  db.Collection("users"),
		apps:   db.Collection("apps"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("mongo users index: %w", err)
	}
	// Unicidad de API key: el esquema original no la garantizaba, acá sí.
	if _, err := s.apps.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("mongo apps index: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*core.User, error) {
	var u core.User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*core.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*core.User, error) {
	return s.findUser(ctx, bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email.address": identifier},
	}})
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return s.findUser(ctx, bson.M{"email.address": email})
}

// FindUserByEmailAndCode es el dual-match: address y confirmation_code deben
// coincidir a la vez.
func (s *Store) FindUserByEmailAndCode(ctx context.Context, email, code string) (*core.User, error) {
	if code == "" {
		// Un binding confirmado guarda código vacío; no dejar que un code
		// vacío matchee esa fila.
		return nil, core.ErrNotFound
	}
	return s.findUser(ctx, bson.M{
		"email.address":           email,
		"email.confirmation_code": code,
	})
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	cp := *u
	if cp.ID == "" {
		cp.ID = core.NewID()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if _, err := s.users.InsertOne(ctx, &cp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, core.ErrDuplicateUsername
		}
		return nil, err
	}
	return &cp, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd core.UserUpdate) (*core.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Email != nil {
		set["email"] = upd.Email
	}
	if upd.PasswordHash != nil {
		set["password"] = *upd.PasswordHash
	}
	if upd.LastLogin != nil {
		set["last_login"] = *upd.LastLogin
	}
	update := bson.M{"$set": set}
	if upd.AppendReset != nil {
		update["$push"] = bson.M{"reseted_passwords": upd.AppendReset}
	}

	var u core.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindApplication(ctx context.Context, id, key string) (*core.Application, error) {
	var a core.Application
	err := s.apps.FindOne(ctx, bson.M{"_id": id, "key": key}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateApplication(ctx context.Context, a *core.Application) (*core.Application, error) {
	cp := *a
	if cp.ID == "" {
		cp.ID = core.NewID()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if _, err := s.apps.InsertOne(ctx, &cp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, core.ErrDuplicateKey
		}
		return nil, err
	}
	return &cp, nil
}
