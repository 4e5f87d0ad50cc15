package handler

// cart.go implements the cookie-backed shopping cart.  All cart state lives
// in the client's "carrinho" cookie (a JSON map of product id to quantity),
// so there is nothing to lock server-side; the handlers only validate ids
// against the catalog and price the contents.  Quantity is pinned to 1:
// every piece in a second-hand store is unique.

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/utils"
)

type CartHandler struct {
	Products ProductStore
	// WhatsappNumber is the store's order number in international format.
	WhatsappNumber string
}

func NewCartHandler(p ProductStore) *CartHandler {
	num := os.Getenv("WHATSAPP_NUMBER")
	if num == "" {
		num = "5511999999999"
	}
	return &CartHandler{Products: p, WhatsappNumber: num}
}

type cartAddReq struct {
	ProdutoID  uint64 `json:"produto_id"`
	Quantidade int    `json:"quantidade"`
}

type cartItemResp struct {
	ProdutoID  uint64  `json:"produto_id"`
	Nome       string  `json:"nome"`
	Preco      float64 `json:"preco"`
	Quantidade int     `json:"quantidade"`
	Subtotal   float64 `json:"subtotal"`
	Imagem     *string `json:"imagem"`
}

// Adicionar puts a product into the cart cookie after checking it exists.
func (h *CartHandler) Adicionar(c echo.Context) error {
	var req cartAddReq
	if err := c.Bind(&req); err != nil || req.ProdutoID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "produto_id e obrigatorio"})
	}
	if _, err := h.Products.GetByID(c.Request().Context(), req.ProdutoID); err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "produto nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}

	cart := utils.ReadCart(c.Request())
	cart[strconv.FormatUint(req.ProdutoID, 10)] = 1 // always quantity 1
	utils.WriteCart(c.Response(), cart)

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "produto adicionado ao carrinho",
		"total_items": len(cart),
	})
}

// Remover drops a product from the cart cookie.  The id is parsed and
// re-formatted so the lookup key matches the canonical decimal form Adicionar
// writes (a padded "01" in the path still removes product "1").
func (h *CartHandler) Remover(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	key := strconv.FormatUint(id, 10)

	cart := utils.ReadCart(c.Request())
	if _, ok := cart[key]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "produto nao esta no carrinho"})
	}
	delete(cart, key)
	utils.WriteCart(c.Response(), cart)
	return c.JSON(http.StatusOK, echo.Map{"message": "produto removido do carrinho"})
}

// Ver prices the cart contents.  Ids that no longer resolve (e.g. a piece
// sold and purged from the client's view) are silently skipped, mirroring
// the original behavior.
func (h *CartHandler) Ver(c echo.Context) error {
	cart := utils.ReadCart(c.Request())
	items := make([]cartItemResp, 0, len(cart))
	for idStr, qty := range cart {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}
		p, err := h.Products.GetByID(c.Request().Context(), id)
		if err != nil {
			continue
		}
		items = append(items, cartItemResp{
			ProdutoID:  p.ID,
			Nome:       p.Nome,
			Preco:      p.PrecoVenda,
			Quantidade: qty,
			Subtotal:   p.PrecoVenda * float64(qty),
			Imagem:     strPtr(p.ImagemPrincipal),
		})
	}
	return c.JSON(http.StatusOK, items)
}

// Total sums the cart.
func (h *CartHandler) Total(c echo.Context) error {
	cart := utils.ReadCart(c.Request())
	var total float64
	totalItems := 0
	for idStr, qty := range cart {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}
		p, err := h.Products.GetByID(c.Request().Context(), id)
		if err != nil {
			continue
		}
		total += p.PrecoVenda * float64(qty)
		totalItems += qty
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":       total,
		"total_items": totalItems,
		"items_count": len(cart),
	})
}

// Limpar expires the cart cookie.
func (h *CartHandler) Limpar(c echo.Context) error {
	utils.ClearCart(c.Response())
	return c.JSON(http.StatusOK, echo.Map{"message": "carrinho limpo"})
}

// Whatsapp builds a wa.me link with the order summary pre-filled, the
// store's checkout flow.
func (h *CartHandler) Whatsapp(c echo.Context) error {
	cart := utils.ReadCart(c.Request())
	if len(cart) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "carrinho vazio"})
	}

	msg := "Pedido do Brecho Cata Roupas\n\n"
	var total float64
	for idStr, qty := range cart {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}
		p, err := h.Products.GetByID(c.Request().Context(), id)
		if err != nil {
			continue
		}
		msg += fmt.Sprintf("- %s\n  R$ %.2f\n\n", p.Nome, p.PrecoVenda)
		total += p.PrecoVenda * float64(qty)
	}
	msg += fmt.Sprintf("TOTAL: R$ %.2f\n\nGostaria de finalizar este pedido!", total)

	link := "https://wa.me/" + h.WhatsappNumber + "?text=" + url.QueryEscape(msg)
	return c.JSON(http.StatusOK, echo.Map{
		"whatsapp_url": link,
		"mensagem":     msg,
		"total":        total,
	})
}
