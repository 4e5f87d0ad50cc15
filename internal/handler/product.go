// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public catalog: listing with optional
// filters, product detail, the favorite action and the storefront rails
// (most viewed, latest arrivals, by category).  None of these require
// authentication.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
)

// ProductHandler aggregates the stores needed for public catalog browsing.
type ProductHandler struct {
	Products   ProductStore
	Categories CategoryStore
}

func NewProductHandler(p ProductStore, c CategoryStore) *ProductHandler {
	return &ProductHandler{Products: p, Categories: c}
}

// parseListQuery extracts the filter predicates from the query string.  The
// status filter defaults to "disponivel" when omitted, which is what keeps
// soft-deleted products out of the storefront; passing status=inativo
// explicitly lists them.
func parseListQuery(c echo.Context) (repository.ProductSearchQuery, error) {
	q := repository.ProductSearchQuery{
		Status: model.StatusDisponivel,
		Limit:  20,
		Order:  repository.OrderRecentes,
	}

	if v := c.QueryParam("categoria_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return q, echo.NewHTTPError(http.StatusBadRequest, "categoria_id invalido")
		}
		q.CategoriaID = id
	}
	if v := c.QueryParam("tamanho"); v != "" {
		if !model.ValidTamanho(v) {
			return q, echo.NewHTTPError(http.StatusBadRequest, "tamanho invalido")
		}
		q.Tamanho = v
	}
	if v := c.QueryParam("condicao"); v != "" {
		if !model.ValidCondicao(v) {
			return q, echo.NewHTTPError(http.StatusBadRequest, "condicao invalida")
		}
		q.Condicao = v
	}
	if v := c.QueryParam("status"); v != "" {
		if !model.ValidStatus(v) {
			return q, echo.NewHTTPError(http.StatusBadRequest, "status invalido")
		}
		q.Status = v
	}
	if v := c.QueryParam("preco_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "preco_min invalido")
		}
		q.PrecoMin = &f
	}
	if v := c.QueryParam("preco_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "preco_max invalido")
		}
		q.PrecoMax = &f
	}
	q.Marca = c.QueryParam("marca")
	q.Busca = c.QueryParam("busca")
	q.Skip = atoiClamp(c.QueryParam("skip"), 0, 0, 1<<30)
	q.Limit = atoiClamp(c.QueryParam("limit"), 20, 1, 100)
	return q, nil
}

// atoiClamp parses s with a default and clamps the result to [min, max].
func atoiClamp(s string, def, min, max int) int {
	n := def
	if s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return def
		}
		n = v
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n
}

// List is the catalog search endpoint.  All filters combine with AND and
// results come newest first.  The total match count goes into the
// X-Total-Count header so the body stays a plain array.
func (h *ProductHandler) List(c echo.Context) error {
	q, err := parseListQuery(c)
	if err != nil {
		he := err.(*echo.HTTPError)
		return c.JSON(he.Code, echo.Map{"error": he.Message})
	}

	items, total, err := h.Products.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, toProdutoList(items))
}

// Get returns a single product by id and, as an explicit side effect,
// increments its view counter by exactly one.  Every call counts: the
// increment is not deduplicated and runs before the row is read so the
// response reflects it.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	ctx := c.Request().Context()

	if err := h.Products.IncrementViews(ctx, id); err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "produto nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toProdutoResp(p))
}

// Favoritar bumps the favorite counter.  No authentication and no
// deduplication: every call adds one, same as the original storefront.
func (h *ProductHandler) Favoritar(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	total, err := h.Products.Favorite(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "produto nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":         "produto favoritado",
		"total_favoritos": total,
	})
}

// MaisVistos lists available products ordered by view count.
func (h *ProductHandler) MaisVistos(c echo.Context) error {
	q := repository.ProductSearchQuery{
		Status: model.StatusDisponivel,
		Limit:  atoiClamp(c.QueryParam("limit"), 10, 1, 50),
		Order:  repository.OrderMaisVistos,
	}
	items, _, err := h.Products.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toProdutoList(items))
}

// Lancamentos lists the latest available arrivals (the default ordering).
func (h *ProductHandler) Lancamentos(c echo.Context) error {
	q := repository.ProductSearchQuery{
		Status: model.StatusDisponivel,
		Limit:  atoiClamp(c.QueryParam("limit"), 10, 1, 50),
		Order:  repository.OrderRecentes,
	}
	items, _, err := h.Products.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toProdutoList(items))
}

// PorCategoria lists available products of one category.  Unlike the filter
// parameter on List, an unknown category here is a 404 because the id is
// part of the path.
func (h *ProductHandler) PorCategoria(c echo.Context) error {
	catID, err := strconv.ParseUint(c.Param("categoria_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	ctx := c.Request().Context()
	if _, err := h.Categories.GetByID(ctx, catID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "categoria nao encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	q := repository.ProductSearchQuery{
		CategoriaID: catID,
		Status:      model.StatusDisponivel,
		Skip:        atoiClamp(c.QueryParam("skip"), 0, 0, 1<<30),
		Limit:       atoiClamp(c.QueryParam("limit"), 20, 1, 100),
		Order:       repository.OrderRecentes,
	}
	items, _, err := h.Products.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toProdutoList(items))
}
