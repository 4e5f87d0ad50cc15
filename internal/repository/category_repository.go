package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

// CategoryRepo reads and writes the `categorias` table.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// GetByID fetches a category by id.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,nome,descricao,ativa,ordem_exibicao FROM categorias WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Nome, &c.Descricao, &c.Ativa, &c.OrdemExibicao)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, ErrCategoryNotFound
	}
	return c, err
}

// ListAtivas returns active categories in display order for the storefront.
func (r *CategoryRepo) ListAtivas(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,nome,descricao,ativa,ordem_exibicao FROM categorias WHERE ativa=TRUE ORDER BY ordem_exibicao, nome")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Nome, &c.Descricao, &c.Ativa, &c.OrdemExibicao); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a category and returns its id.
func (r *CategoryRepo) Create(ctx context.Context, nome, descricao string, ordem int) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO categorias (nome, descricao, ativa, ordem_exibicao) VALUES (?,?,TRUE,?)",
		nome, nullable(descricao), ordem)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrCategoryExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Count returns the total number of categories.
func (r *CategoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM categorias").Scan(&n)
	return n, err
}
