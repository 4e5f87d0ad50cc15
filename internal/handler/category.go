package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
)

// CategoryHandler exposes the public category listing and the admin-gated
// category creation.
type CategoryHandler struct {
	Categories CategoryStore
}

func NewCategoryHandler(c CategoryStore) *CategoryHandler {
	return &CategoryHandler{Categories: c}
}

type categoriaResp struct {
	ID            uint64  `json:"id"`
	Nome          string  `json:"nome"`
	Descricao     *string `json:"descricao"`
	Ativa         bool    `json:"ativa"`
	OrdemExibicao int     `json:"ordem_exibicao"`
}

func toCategoriaResp(c model.Category) categoriaResp {
	return categoriaResp{
		ID:            c.ID,
		Nome:          c.Nome,
		Descricao:     strPtr(c.Descricao),
		Ativa:         c.Ativa,
		OrdemExibicao: c.OrdemExibicao,
	}
}

type categoriaCreateReq struct {
	Nome          string `json:"nome"`
	Descricao     string `json:"descricao"`
	OrdemExibicao int    `json:"ordem_exibicao"`
}

// List returns the active categories in display order.
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.Categories.ListAtivas(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	out := make([]categoriaResp, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoriaResp(cat))
	}
	return c.JSON(http.StatusOK, out)
}

// Create inserts a new category (admin only).
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoriaCreateReq
	if err := c.Bind(&req); err != nil || req.Nome == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome e obrigatorio"})
	}
	id, err := h.Categories.Create(c.Request().Context(), req.Nome, req.Descricao, req.OrdemExibicao)
	if err != nil {
		if err == repository.ErrCategoryExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoria ja cadastrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao criar categoria"})
	}
	cat, err := h.Categories.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusCreated, toCategoriaResp(cat))
}
