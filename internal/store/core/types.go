package core

import "time"

// User es el registro durable de un usuario final.
type User struct {
	ID           string        `bson:"_id,omitempty" json:"id"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"password" json:"-"`
	Active       bool          `bson:"active" json:"active"`
	Email        EmailBinding  `bson:"email" json:"email"`
	Phone        PhoneBinding  `bson:"phone" json:"phone"`
	ResetHistory []ResetRecord `bson:"reseted_passwords" json:"-"`
	LastLogin    time.Time     `bson:"last_login" json:"last_login"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}

// EmailBinding asocia un usuario a una dirección y su estado de verificación.
//
// Invariante: Valid=true implica ConfirmationCode=="" (una dirección
// confirmada no tiene código pendiente). Solo puede existir un código
// pendiente a la vez; emitir uno nuevo pisa el anterior.
type EmailBinding struct {
	Address          string `bson:"address" json:"address"`
	ConfirmationCode string `bson:"confirmation_code" json:"-"`
	Valid            bool   `bson:"valid" json:"valid"`
}

// PhoneBinding existe por completitud del esquema heredado; ninguna
// operación lo usa hoy.
type PhoneBinding struct {
	Number           int64  `bson:"number" json:"number"`
	AreaCode         int    `bson:"area_code" json:"area_code"`
	ConfirmationCode string `bson:"confirmation_code" json:"-"`
	Valid            bool   `bson:"valid" json:"valid"`
}

// ResetRecord es una entrada de auditoría que se agrega al completar un
// reset de password. Nunca se lee de vuelta.
type ResetRecord struct {
	PasswordHash string    `bson:"password" json:"-"`
	Date         time.Time `bson:"date" json:"date"`
	UsedToken    string    `bson:"used_token" json:"-"`
}

// Application es un tenant registrado, identificado por (id, key).
type Application struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Key         string    `bson:"key" json:"key"`
	ImageURI    string    `bson:"image_uri,omitempty" json:"image_uri,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// UserUpdate es un update parcial: solo los campos no-nil se persisten.
// El flujo de verificación escribe únicamente el sub-documento email y/o el
// hash de password, nunca toca campos no relacionados.
type UserUpdate struct {
	Email        *EmailBinding
	PasswordHash *string
	LastLogin    *time.Time
	AppendReset  *ResetRecord
}
