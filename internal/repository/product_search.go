package repository

import (
	"context"
	"strings"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

// Orderings accepted by Search.  The default is newest first; OrderMaisVistos
// sorts by the view counter for the "most viewed" storefront rail.
const (
	OrderRecentes   = "recentes"
	OrderMaisVistos = "mais_vistos"
)

// ProductSearchQuery defines the optional filter predicates and pagination
// for the catalog listing.  All predicates combine with AND; Busca is the
// free-text term matched with OR against nome, descricao and marca before
// being conjuncted with the rest.  Zero values mean "no filter", except
// Status which the handler defaults to "disponivel" when the caller omits
// it.
type ProductSearchQuery struct {
	CategoriaID uint64
	Tamanho     string
	Condicao    string
	Status      string
	PrecoMin    *float64
	PrecoMax    *float64
	Marca       string
	Busca       string
	Skip        int
	Limit       int
	Order       string
}

// buildProductFilter translates the query into a WHERE condition and its
// bind arguments.  Kept separate from Search so the predicate assembly is
// testable without a database.
func buildProductFilter(q ProductSearchQuery) (string, []any) {
	where := []string{}
	args := []any{}

	if q.CategoriaID != 0 {
		where = append(where, "p.categoria_id = ?")
		args = append(args, q.CategoriaID)
	}
	if q.Tamanho != "" {
		where = append(where, "p.tamanho = ?")
		args = append(args, q.Tamanho)
	}
	if q.Condicao != "" {
		where = append(where, "p.condicao = ?")
		args = append(args, q.Condicao)
	}
	if q.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, q.Status)
	}
	if q.PrecoMin != nil {
		where = append(where, "p.preco_venda >= ?")
		args = append(args, *q.PrecoMin)
	}
	if q.PrecoMax != nil {
		where = append(where, "p.preco_venda <= ?")
		args = append(args, *q.PrecoMax)
	}
	if q.Marca != "" {
		where = append(where, "LOWER(p.marca) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Marca)+"%")
	}
	if q.Busca != "" {
		where = append(where,
			"(LOWER(p.nome) LIKE ? OR LOWER(p.descricao) LIKE ? OR LOWER(p.marca) LIKE ?)")
		term := "%" + strings.ToLower(q.Busca) + "%"
		args = append(args, term, term, term)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	return cond, args
}

// orderClause maps the requested ordering to SQL.  Unknown values fall back
// to the default (creation time descending), so "newest" is an alias of the
// default rather than a distinct mode.
func orderClause(order string) string {
	if order == OrderMaisVistos {
		return "ORDER BY p.visualizacoes DESC, p.created_at DESC"
	}
	return "ORDER BY p.created_at DESC"
}

// Search runs the filtered catalog listing: a single bounded, ordered
// SELECT joined with the category name, plus a COUNT over the same
// condition so clients can paginate.  Search never mutates state.
func (r *ProductRepo) Search(ctx context.Context, q ProductSearchQuery) ([]model.Product, int64, error) {
	cond, args := buildProductFilter(q)

	var total int64
	countSQL := "SELECT COUNT(*)" + productFrom + "WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + productColumns + productFrom +
		"WHERE " + cond + " " + orderClause(q.Order) + " LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Skip)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Product, 0, q.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
