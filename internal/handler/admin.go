package handler

// admin.go implements the admin-gated catalog mutations (create, merge-patch
// update, soft delete, unfiltered listing) and the dashboard counters.
// Routes using these handlers run the full access-control chain:
// authenticate, require-active, require-admin.

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/queue"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
)

// AdminHandler bundles the stores behind the admin panel.  PublishSold is
// the hook used to emit a produto.vendido event when an update transitions
// a product to "vendido"; it may be nil (eventing disabled) and failures are
// never surfaced to the admin request.
type AdminHandler struct {
	Products    ProductStore
	Categories  CategoryStore
	Users       UserStore
	PublishSold func(context.Context, queue.ProductSoldEvent) error
}

func NewAdminHandler(p ProductStore, c CategoryStore, u UserStore) *AdminHandler {
	return &AdminHandler{Products: p, Categories: c, Users: u}
}

// ----- DTOs -----

type produtoCreateReq struct {
	Nome          string   `json:"nome"`
	Descricao     string   `json:"descricao"`
	Marca         string   `json:"marca"`
	CorPrincipal  string   `json:"cor_principal"`
	Tamanho       string   `json:"tamanho"`
	Condicao      string   `json:"condicao"`
	PrecoOriginal *float64 `json:"preco_original"`
	PrecoVenda    float64  `json:"preco_venda"`
	CategoriaID   uint64   `json:"categoria_id"`
	AnoAproximado *int     `json:"ano_aproximado"`
	Material      string   `json:"material"`
	Cuidados      string   `json:"cuidados"`
	HistoriaPeca  string   `json:"historia_peca"`
}

// produtoUpdateReq is a merge-patch: nil fields were absent from the body
// and stay untouched, while present fields are applied even when they carry
// an empty string.  This is why every field is a pointer.
type produtoUpdateReq struct {
	Nome          *string  `json:"nome"`
	Descricao     *string  `json:"descricao"`
	Marca         *string  `json:"marca"`
	CorPrincipal  *string  `json:"cor_principal"`
	Tamanho       *string  `json:"tamanho"`
	Condicao      *string  `json:"condicao"`
	PrecoOriginal *float64 `json:"preco_original"`
	PrecoVenda    *float64 `json:"preco_venda"`
	Status        *string  `json:"status"`
	CategoriaID   *uint64  `json:"categoria_id"`
	AnoAproximado *int     `json:"ano_aproximado"`
	Material      *string  `json:"material"`
	Cuidados      *string  `json:"cuidados"`
	HistoriaPeca  *string  `json:"historia_peca"`
}

type dashboardResp struct {
	TotalProdutos       int64 `json:"total_produtos"`
	ProdutosDisponiveis int64 `json:"produtos_disponiveis"`
	ProdutosVendidos    int64 `json:"produtos_vendidos"`
	TotalCategorias     int64 `json:"total_categorias"`
	TotalUsuarios       int64 `json:"total_usuarios"`
}

func validAno(ano int) bool {
	return ano >= 1950 && ano <= time.Now().Year()
}

// CreateProduto validates the payload, checks the category reference and
// inserts a new available product.
func (h *AdminHandler) CreateProduto(c echo.Context) error {
	var req produtoCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "corpo invalido"})
	}
	req.Nome = strings.TrimSpace(req.Nome)
	switch {
	case len(req.Nome) < 3 || len(req.Nome) > 200:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome deve ter entre 3 e 200 caracteres"})
	case !model.ValidTamanho(req.Tamanho):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tamanho invalido"})
	case !model.ValidCondicao(req.Condicao):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "condicao invalida"})
	case req.PrecoVenda <= 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "preco_venda deve ser maior que zero"})
	case req.PrecoOriginal != nil && *req.PrecoOriginal <= 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "preco_original deve ser maior que zero"})
	case req.AnoAproximado != nil && !validAno(*req.AnoAproximado):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ano_aproximado invalido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// A product must reference an existing category: a dangling id is a 400
	// on creation, not a 404.
	if _, err := h.Categories.GetByID(ctx, req.CategoriaID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoria nao encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}

	id, err := h.Products.Create(ctx, repository.ProductInput{
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Marca:         req.Marca,
		CorPrincipal:  req.CorPrincipal,
		Tamanho:       req.Tamanho,
		Condicao:      req.Condicao,
		PrecoOriginal: req.PrecoOriginal,
		PrecoVenda:    req.PrecoVenda,
		CategoriaID:   req.CategoriaID,
		AnoAproximado: req.AnoAproximado,
		Material:      req.Material,
		Cuidados:      req.Cuidados,
		HistoriaPeca:  req.HistoriaPeca,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao criar produto"})
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao criar produto"})
	}
	return c.JSON(http.StatusCreated, toProdutoResp(p))
}

// UpdateProduto applies a merge-patch to an existing product.  Fields absent
// from the body stay untouched.  A transition into the "vendido" status
// publishes a produto.vendido event after the row is committed.
func (h *AdminHandler) UpdateProduto(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	var req produtoUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "corpo invalido"})
	}

	if req.Nome != nil {
		*req.Nome = strings.TrimSpace(*req.Nome)
		if len(*req.Nome) < 3 || len(*req.Nome) > 200 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome deve ter entre 3 e 200 caracteres"})
		}
	}
	if req.Tamanho != nil && !model.ValidTamanho(*req.Tamanho) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tamanho invalido"})
	}
	if req.Condicao != nil && !model.ValidCondicao(*req.Condicao) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "condicao invalida"})
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status invalido"})
	}
	if req.PrecoVenda != nil && *req.PrecoVenda <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "preco_venda deve ser maior que zero"})
	}
	if req.PrecoOriginal != nil && *req.PrecoOriginal <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "preco_original deve ser maior que zero"})
	}
	if req.AnoAproximado != nil && !validAno(*req.AnoAproximado) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ano_aproximado invalido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	before, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "produto nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}

	if req.CategoriaID != nil {
		if _, err := h.Categories.GetByID(ctx, *req.CategoriaID); err != nil {
			if err == repository.ErrCategoryNotFound {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoria nao encontrada"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
		}
	}

	patch := repository.ProductPatch{
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Marca:         req.Marca,
		CorPrincipal:  req.CorPrincipal,
		Tamanho:       req.Tamanho,
		Condicao:      req.Condicao,
		PrecoOriginal: req.PrecoOriginal,
		PrecoVenda:    req.PrecoVenda,
		Status:        req.Status,
		CategoriaID:   req.CategoriaID,
		AnoAproximado: req.AnoAproximado,
		Material:      req.Material,
		Cuidados:      req.Cuidados,
		HistoriaPeca:  req.HistoriaPeca,
	}
	if err := h.Products.Update(ctx, id, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao atualizar produto"})
	}

	after, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}

	if h.PublishSold != nil &&
		before.Status != model.StatusVendido && after.Status == model.StatusVendido {
		_ = h.PublishSold(ctx, queue.NewProductSoldEvent(after))
	}
	return c.JSON(http.StatusOK, toProdutoResp(after))
}

// DeleteProduto soft-deletes: the row survives with status "inativo" and
// stays reachable by id and in the admin listing.
func (h *AdminHandler) DeleteProduto(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Products.GetByID(ctx, id); err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "produto nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	if err := h.Products.SoftDelete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao remover produto"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "produto removido com sucesso"})
}

// ListProdutos is the admin listing: no status filter, so soft-deleted and
// sold pieces show up alongside available ones.
func (h *AdminHandler) ListProdutos(c echo.Context) error {
	skip := atoiClamp(c.QueryParam("skip"), 0, 0, 1<<30)
	limit := atoiClamp(c.QueryParam("limit"), 50, 1, 100)

	items, err := h.Products.ListAll(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toProdutoList(items))
}

// Dashboard returns the admin panel counters.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.Products.Count(ctx, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	disponiveis, err := h.Products.Count(ctx, model.StatusDisponivel)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	vendidos, err := h.Products.Count(ctx, model.StatusVendido)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	categorias, err := h.Categories.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	usuarios, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}

	return c.JSON(http.StatusOK, dashboardResp{
		TotalProdutos:       total,
		ProdutosDisponiveis: disponiveis,
		ProdutosVendidos:    vendidos,
		TotalCategorias:     categorias,
		TotalUsuarios:       usuarios,
	})
}
