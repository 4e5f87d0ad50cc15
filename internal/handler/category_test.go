package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

func TestCategoryList_OnlyActiveInDisplayOrder(t *testing.T) {
	cats := newFakeCategoryStore()
	cats.add(model.Category{Nome: "Calcados", Ativa: true, OrdemExibicao: 2})
	cats.add(model.Category{Nome: "Roupas", Ativa: true, OrdemExibicao: 1})
	cats.add(model.Category{Nome: "Descontinuada", Ativa: false})
	h := NewCategoryHandler(cats)

	c, rec := jsonCtx(http.MethodGet, "/categorias", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "Roupas", items[0]["nome"])
	require.Equal(t, "Calcados", items[1]["nome"])
}

func TestCategoryCreate(t *testing.T) {
	cats := newFakeCategoryStore()
	h := NewCategoryHandler(cats)

	c, rec := jsonCtx(http.MethodPost, "/categorias", `{"nome":"Acessorios","ordem_exibicao":3}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Acessorios", decodeBody(t, rec)["nome"])

	// Duplicate name.
	c, rec = jsonCtx(http.MethodPost, "/categorias", `{"nome":"Acessorios"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "categoria ja cadastrada")

	// Missing name.
	c, rec = jsonCtx(http.MethodPost, "/categorias", `{}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
