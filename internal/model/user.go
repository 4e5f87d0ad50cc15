package model

import (
	"database/sql"
	"time"
)

// User types form a closed set compared by value.  Authorization level is a
// tagged variant, not a hierarchy: a user is either a regular customer
// ("cliente") or an administrator ("admin").
const (
	UserTypeCliente = "cliente"
	UserTypeAdmin   = "admin"
)

// User represents a row of the `usuarios` table.  Accounts are never
// hard-deleted; removing a user flips Ativo to false so orders and
// addresses keep a valid owner.
//
// Fields:
//
//	ID              – primary key identifier of the user.
//	Nome            – display name.
//	Email           – unique email address, the JWT subject.
//	SenhaHash       – bcrypt hashed password; never serialized.
//	Telefone        – optional phone number.
//	CPF             – optional national document, unique when present.
//	Tipo            – user type (cliente or admin).
//	Ativo           – whether the account may authenticate.
//	EmailVerificado – whether the email was confirmed.
//	CreatedAt       – timestamp of creation.
//	UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64         // usuarios.id
	Nome            string         // usuarios.nome
	Email           string         // usuarios.email
	SenhaHash       string         // usuarios.senha_hash
	Telefone        sql.NullString // usuarios.telefone (nullable)
	CPF             sql.NullString // usuarios.cpf (nullable)
	Tipo            string         // usuarios.tipo
	Ativo           bool           // usuarios.ativo
	EmailVerificado bool           // usuarios.email_verificado
	CreatedAt       time.Time      // usuarios.created_at
	UpdatedAt       time.Time      // usuarios.updated_at
}

// IsAdmin reports whether the user carries the admin type.
func (u User) IsAdmin() bool { return u.Tipo == UserTypeAdmin }
