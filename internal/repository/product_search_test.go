package repository

import (
	"reflect"
	"testing"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

func TestBuildProductFilter_Empty(t *testing.T) {
	t.Parallel()

	cond, args := buildProductFilter(ProductSearchQuery{})
	if cond != "1=1" {
		t.Fatalf("cond: got %q want %q", cond, "1=1")
	}
	if len(args) != 0 {
		t.Fatalf("args: got %v want none", args)
	}
}

func TestBuildProductFilter_AllPredicatesConjoined(t *testing.T) {
	t.Parallel()

	min, max := 10.0, 99.9
	cond, args := buildProductFilter(ProductSearchQuery{
		CategoriaID: 3,
		Tamanho:     "M",
		Condicao:    model.CondicaoSemiNovo,
		Status:      model.StatusDisponivel,
		PrecoMin:    &min,
		PrecoMax:    &max,
		Marca:       "Zara",
		Busca:       "Vestido",
	})

	want := "p.categoria_id = ? AND p.tamanho = ? AND p.condicao = ? AND p.status = ?" +
		" AND p.preco_venda >= ? AND p.preco_venda <= ? AND LOWER(p.marca) LIKE ?" +
		" AND (LOWER(p.nome) LIKE ? OR LOWER(p.descricao) LIKE ? OR LOWER(p.marca) LIKE ?)"
	if cond != want {
		t.Fatalf("cond:\n got %q\nwant %q", cond, want)
	}

	wantArgs := []any{
		uint64(3), "M", model.CondicaoSemiNovo, model.StatusDisponivel,
		10.0, 99.9, "%zara%", "%vestido%", "%vestido%", "%vestido%",
	}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args:\n got %v\nwant %v", args, wantArgs)
	}
}

func TestBuildProductFilter_BoundsAreInclusive(t *testing.T) {
	t.Parallel()

	// Both ends use >= / <= so a product priced exactly at a bound matches.
	v := 50.0
	cond, _ := buildProductFilter(ProductSearchQuery{PrecoMin: &v, PrecoMax: &v})
	want := "p.preco_venda >= ? AND p.preco_venda <= ?"
	if cond != want {
		t.Fatalf("cond: got %q want %q", cond, want)
	}
}

func TestBuildProductFilter_SearchTermLowercased(t *testing.T) {
	t.Parallel()

	_, args := buildProductFilter(ProductSearchQuery{Busca: "JAQUETA Jeans"})
	if len(args) != 3 {
		t.Fatalf("args: got %v want 3 entries", args)
	}
	for _, a := range args {
		if a != "%jaqueta jeans%" {
			t.Fatalf("arg: got %v want %q", a, "%jaqueta jeans%")
		}
	}
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	if got := orderClause(OrderMaisVistos); got != "ORDER BY p.visualizacoes DESC, p.created_at DESC" {
		t.Fatalf("mais_vistos: got %q", got)
	}
	if got := orderClause(OrderRecentes); got != "ORDER BY p.created_at DESC" {
		t.Fatalf("recentes: got %q", got)
	}
	// Unknown orderings fall back to the default.
	if got := orderClause("alfabetico"); got != "ORDER BY p.created_at DESC" {
		t.Fatalf("fallback: got %q", got)
	}
}
