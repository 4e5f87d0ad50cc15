package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

// UserRepo is the credential store: it persists user records and is the
// single source of truth the access-control chain re-consults on every
// authenticated request.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,nome,email,senha_hash,telefone,cpf,tipo,ativo,email_verificado,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Telefone, &u.CPF,
		&u.Tipo, &u.Ativo, &u.EmailVerificado, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a customer user with an already-hashed password and
// returns its id.  Emails are normalized to lower case so uniqueness is
// case-insensitive at the application boundary too.
func (r *UserRepo) Create(ctx context.Context, nome, email, senhaHash, telefone string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var tel sql.NullString
	if telefone != "" {
		tel = sql.NullString{String: telefone, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (nome, email, senha_hash, telefone, tipo, ativo) VALUES (?,?,?,?,?,TRUE)",
		nome, email, senhaHash, tel, model.UserTypeCliente)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns users ordered by id with skip/limit pagination (admin view).
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM usuarios ORDER BY id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ProfilePatch carries a merge-patch of the caller-editable profile fields.
// nil means "leave untouched"; a pointer to the empty string clears the
// field.  This is what makes the update a merge-patch instead of a replace.
type ProfilePatch struct {
	Nome     *string
	Telefone *string
	CPF      *string
}

// UpdateProfile applies only the fields present in the patch.  When a CPF is
// supplied it must not belong to another user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p ProfilePatch) error {
	if p.CPF != nil && *p.CPF != "" {
		var other uint64
		err := r.DB.QueryRowContext(ctx,
			"SELECT id FROM usuarios WHERE cpf=? AND id<>? LIMIT 1", *p.CPF, id).Scan(&other)
		if err == nil {
			return ErrCPFExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	set := []string{}
	args := []any{}
	if p.Nome != nil {
		set = append(set, "nome=?")
		args = append(args, *p.Nome)
	}
	if p.Telefone != nil {
		set = append(set, "telefone=?")
		args = append(args, nullable(*p.Telefone))
	}
	if p.CPF != nil {
		set = append(set, "cpf=?")
		args = append(args, nullable(*p.CPF))
	}
	if len(set) == 0 {
		return nil // nothing to apply
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if isDuplicateKey(err) {
		return ErrCPFExists
	}
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, senhaHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET senha_hash=? WHERE id=?", senhaHash, id)
	return err
}

// SetAtivo toggles the active flag.  Deactivation is the soft-delete for
// users: rows are never removed.
func (r *UserRepo) SetAtivo(ctx context.Context, id uint64, ativo bool) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET ativo=? WHERE id=?", ativo, id)
	return err
}

// SetTipo changes the user type (cliente/admin).
func (r *UserRepo) SetTipo(ctx context.Context, id uint64, tipo string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET tipo=? WHERE id=?", tipo, id)
	return err
}

// Count returns the total number of user rows, active or not.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM usuarios").Scan(&n)
	return n, err
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
