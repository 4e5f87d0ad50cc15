package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
)

// getCtx builds an echo context for a GET with optional path params.
func getCtx(target string, paramNames, paramValues []string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramNames...)
	c.SetParamValues(paramValues...)
	return c, rec
}

func seedCatalog() (*fakeProductStore, *fakeCategoryStore) {
	cats := newFakeCategoryStore()
	roupas := cats.add(model.Category{Nome: "Roupas", Ativa: true})

	products := newFakeProductStore()
	products.add(model.Product{Nome: "Vestido floral", PrecoVenda: 59.9, CategoriaID: roupas.ID, Status: model.StatusDisponivel})
	products.add(model.Product{Nome: "Jaqueta jeans", PrecoVenda: 89.9, CategoriaID: roupas.ID, Status: model.StatusDisponivel})
	products.add(model.Product{Nome: "Camisa antiga", PrecoVenda: 19.9, CategoriaID: roupas.ID, Status: model.StatusInativo})
	return products, cats
}

func TestList_DefaultsToDisponivel(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	c, rec := getCtx("/produtos", nil, nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The soft-deleted product stays out unless status=inativo is explicit.
	require.Equal(t, model.StatusDisponivel, products.lastSearch.Status)
	require.Equal(t, "2", rec.Header().Get("X-Total-Count"))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "Jaqueta jeans", items[0]["nome"]) // newest first
}

func TestList_ExplicitInativoListsSoftDeleted(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	c, rec := getCtx("/produtos?status=inativo", nil, nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, model.StatusInativo, products.lastSearch.Status)
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))
}

func TestList_InvalidFilterValues(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	for _, target := range []string{
		"/produtos?status=queimado",
		"/produtos?tamanho=GGG",
		"/produtos?condicao=rasgado",
		"/produtos?preco_min=-1",
		"/produtos?preco_max=abc",
		"/produtos?categoria_id=abc",
	} {
		c, rec := getCtx(target, nil, nil)
		require.NoError(t, h.List(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "target: %s", target)
	}
}

func TestList_PaginationClamped(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	c, _ := getCtx("/produtos?limit=1000&skip=-5", nil, nil)
	require.NoError(t, h.List(c))
	require.Equal(t, 100, products.lastSearch.Limit)
	require.Equal(t, 0, products.lastSearch.Skip)

	c, _ = getCtx("/produtos?limit=0", nil, nil)
	require.NoError(t, h.List(c))
	require.Equal(t, 1, products.lastSearch.Limit)
}

func TestGet_IncrementsViewsEveryFetch(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	for want := 1; want <= 3; want++ {
		c, rec := getCtx("/produtos/1", []string{"id"}, []string{"1"})
		require.NoError(t, h.Get(c))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		// The response reflects the increment caused by this very fetch.
		require.Equal(t, float64(want), body["visualizacoes"])
	}
}

func TestGet_NotFound(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	c, rec := getCtx("/produtos/999", []string{"id"}, []string{"999"})
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoritar_AccumulatesWithoutDeduplication(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	for want := 1; want <= 2; want++ {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/produtos/1/favoritar", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Favoritar(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, float64(want), decodeBody(t, rec)["total_favoritos"])
	}
}

func TestMaisVistos_UsesViewOrdering(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	c, rec := getCtx("/produtos/mais-vistos?limit=200", nil, nil)
	require.NoError(t, h.MaisVistos(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, repository.OrderMaisVistos, products.lastSearch.Order)
	require.Equal(t, 50, products.lastSearch.Limit) // rail limit caps at 50
	require.Equal(t, model.StatusDisponivel, products.lastSearch.Status)
}

func TestPorCategoria_UnknownCategory(t *testing.T) {
	products, cats := seedCatalog()
	h := NewProductHandler(products, cats)

	c, rec := getCtx("/produtos/categoria/42", []string{"categoria_id"}, []string{"42"})
	require.NoError(t, h.PorCategoria(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPorCategoria_FiltersByCategory(t *testing.T) {
	products, cats := seedCatalog()
	outra := cats.add(model.Category{Nome: "Calcados", Ativa: true})
	products.add(model.Product{Nome: "Bota de couro", PrecoVenda: 120, CategoriaID: outra.ID})
	h := NewProductHandler(products, cats)

	c, rec := getCtx("/produtos/categoria/2", []string{"categoria_id"}, []string{"2"})
	require.NoError(t, h.PorCategoria(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Bota de couro", items[0]["nome"])
}
