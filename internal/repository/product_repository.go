package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

// ProductRepo is the catalog store.  All reads join the category name in;
// "delete" is always a status transition, never a DELETE statement.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = `p.id, p.nome, p.descricao, p.marca, p.cor_principal,
	p.tamanho, p.condicao, p.preco_original, p.preco_venda, p.status,
	p.categoria_id, c.nome, p.ano_aproximado, p.material, p.cuidados,
	p.historia_peca, p.imagem_principal, p.imagens_adicionais,
	p.visualizacoes, p.favoritado, p.created_at, p.updated_at`

const productFrom = " FROM produtos p JOIN categorias c ON c.id = p.categoria_id "

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Nome, &p.Descricao, &p.Marca, &p.CorPrincipal,
		&p.Tamanho, &p.Condicao, &p.PrecoOriginal, &p.PrecoVenda, &p.Status,
		&p.CategoriaID, &p.CategoriaNome, &p.AnoAproximado, &p.Material, &p.Cuidados,
		&p.HistoriaPeca, &p.ImagemPrincipal, &p.ImagensAdicionais,
		&p.Visualizacoes, &p.Favoritado, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ProductInput carries the fields accepted on creation.  Optional text
// fields arrive as plain strings and are stored as NULL when empty.
type ProductInput struct {
	Nome          string
	Descricao     string
	Marca         string
	CorPrincipal  string
	Tamanho       string
	Condicao      string
	PrecoOriginal *float64
	PrecoVenda    float64
	CategoriaID   uint64
	AnoAproximado *int
	Material      string
	Cuidados      string
	HistoriaPeca  string
}

// Create inserts a product with status "disponivel" and returns its id.
// The category reference is validated by the handler before insertion.
func (r *ProductRepo) Create(ctx context.Context, in ProductInput) (uint64, error) {
	var precoOrig sql.NullFloat64
	if in.PrecoOriginal != nil {
		precoOrig = sql.NullFloat64{Float64: *in.PrecoOriginal, Valid: true}
	}
	var ano sql.NullInt64
	if in.AnoAproximado != nil {
		ano = sql.NullInt64{Int64: int64(*in.AnoAproximado), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO produtos
			(nome, descricao, marca, cor_principal, tamanho, condicao,
			 preco_original, preco_venda, status, categoria_id,
			 ano_aproximado, material, cuidados, historia_peca)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		in.Nome, nullable(in.Descricao), nullable(in.Marca), nullable(in.CorPrincipal),
		in.Tamanho, in.Condicao, precoOrig, in.PrecoVenda, model.StatusDisponivel,
		in.CategoriaID, ano, nullable(in.Material), nullable(in.Cuidados),
		nullable(in.HistoriaPeca))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a product (any status) with its category name.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+productFrom+"WHERE p.id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrProductNotFound
	}
	return p, err
}

// IncrementViews bumps the view counter by exactly one.  The increment runs
// inside the UPDATE so two concurrent fetches both land; the application
// never reads-modifies-writes the counter.
func (r *ProductRepo) IncrementViews(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE produtos SET visualizacoes = visualizacoes + 1 WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Favorite bumps the favorite counter by one and returns the new total.
// Repeat favorites from the same caller are counted again; there is no
// deduplication.
func (r *ProductRepo) Favorite(ctx context.Context, id uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE produtos SET favoritado = favoritado + 1 WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrProductNotFound
	}
	var total uint64
	err = r.DB.QueryRowContext(ctx,
		"SELECT favoritado FROM produtos WHERE id=?", id).Scan(&total)
	return total, err
}

// ProductPatch is a merge-patch over product fields: nil leaves a field
// untouched, a non-nil pointer applies the value, including explicit empty
// strings for clearable text columns.
//
// The nullable numeric columns (preco_original, ano_aproximado) cannot be
// cleared back to NULL through this patch: a JSON null decodes to an absent
// pointer, which means "untouched", and there is no in-band empty value the
// way "" is for text.  Clearing them would need a distinct wire signal
// (explicit clear flags); until a caller needs that, present means set.
type ProductPatch struct {
	Nome          *string
	Descricao     *string
	Marca         *string
	CorPrincipal  *string
	Tamanho       *string
	Condicao      *string
	PrecoOriginal *float64
	PrecoVenda    *float64
	Status        *string
	CategoriaID   *uint64
	AnoAproximado *int
	Material      *string
	Cuidados      *string
	HistoriaPeca  *string
}

// Update applies only the fields present in the patch.  Validation of
// values (enums, price > 0, category existence) happens in the handler;
// here the patch is translated mechanically into a SET clause.
func (r *ProductRepo) Update(ctx context.Context, id uint64, patch ProductPatch) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if patch.Nome != nil {
		add("nome", *patch.Nome)
	}
	if patch.Descricao != nil {
		add("descricao", nullable(*patch.Descricao))
	}
	if patch.Marca != nil {
		add("marca", nullable(*patch.Marca))
	}
	if patch.CorPrincipal != nil {
		add("cor_principal", nullable(*patch.CorPrincipal))
	}
	if patch.Tamanho != nil {
		add("tamanho", *patch.Tamanho)
	}
	if patch.Condicao != nil {
		add("condicao", *patch.Condicao)
	}
	if patch.PrecoOriginal != nil {
		add("preco_original", *patch.PrecoOriginal)
	}
	if patch.PrecoVenda != nil {
		add("preco_venda", *patch.PrecoVenda)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.CategoriaID != nil {
		add("categoria_id", *patch.CategoriaID)
	}
	if patch.AnoAproximado != nil {
		add("ano_aproximado", *patch.AnoAproximado)
	}
	if patch.Material != nil {
		add("material", nullable(*patch.Material))
	}
	if patch.Cuidados != nil {
		add("cuidados", nullable(*patch.Cuidados))
	}
	if patch.HistoriaPeca != nil {
		add("historia_peca", nullable(*patch.HistoriaPeca))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE produtos SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// SoftDelete transitions a product to the terminal "inativo" status.  The
// row survives and stays reachable by id and in admin listings.
func (r *ProductRepo) SoftDelete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE produtos SET status=? WHERE id=?", model.StatusInativo, id)
	return err
}

// ListAll returns products with no status filter (admin listing), newest
// first.  Soft-deleted rows show up here.
func (r *ProductRepo) ListAll(ctx context.Context, skip, limit int) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+productFrom+"ORDER BY p.created_at DESC LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the number of products, optionally restricted to a status.
// Pass "" to count every row.
func (r *ProductRepo) Count(ctx context.Context, status string) (int64, error) {
	var n int64
	var err error
	if status == "" {
		err = r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM produtos").Scan(&n)
	} else {
		err = r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM produtos WHERE status=?", status).Scan(&n)
	}
	return n, err
}
