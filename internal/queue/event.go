// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

// ProductSoldEvent is published when an admin update transitions a product
// into the "vendido" status.  It carries enough information for downstream
// consumers (sales log, notifications, analytics) without querying the
// primary database.
type ProductSoldEvent struct {
	EventID       string  `json:"event_id"`
	ProdutoID     uint64  `json:"produto_id"`
	Nome          string  `json:"nome"`
	Marca         string  `json:"marca,omitempty"`
	PrecoVenda    float64 `json:"preco_venda"`
	CategoriaID   uint64  `json:"categoria_id"`
	CategoriaNome string  `json:"categoria_nome"`
	SoldAt        string  `json:"sold_at"`
}

// NewProductSoldEvent builds the event from the just-updated product row.
func NewProductSoldEvent(p model.Product) ProductSoldEvent {
	ev := ProductSoldEvent{
		EventID:       uuid.NewString(),
		ProdutoID:     p.ID,
		Nome:          p.Nome,
		PrecoVenda:    p.PrecoVenda,
		CategoriaID:   p.CategoriaID,
		CategoriaNome: p.CategoriaNome,
		SoldAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if p.Marca.Valid {
		ev.Marca = p.Marca.String
	}
	return ev
}
