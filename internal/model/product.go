package model

import (
	"database/sql"
	"time"
)

// Product lifecycle states.  StatusInativo is terminal: soft-deleting a
// product transitions it here and default listings exclude it, but the row
// stays retrievable by id and in unfiltered admin listings.
const (
	StatusDisponivel = "disponivel"
	StatusVendido    = "vendido"
	StatusReservado  = "reservado"
	StatusInativo    = "inativo"
)

// Garment condition values for second-hand pieces.
const (
	CondicaoNovo         = "novo"
	CondicaoSemiNovo     = "semi_novo"
	CondicaoUsadoBom     = "usado_bom"
	CondicaoUsadoRegular = "usado_regular"
)

// Clothing sizes, plus "unico" for one-size pieces.
var validTamanhos = map[string]bool{
	"PP": true, "P": true, "M": true, "G": true, "GG": true, "XGG": true,
	"unico": true,
}

var validStatus = map[string]bool{
	StatusDisponivel: true, StatusVendido: true,
	StatusReservado: true, StatusInativo: true,
}

var validCondicoes = map[string]bool{
	CondicaoNovo: true, CondicaoSemiNovo: true,
	CondicaoUsadoBom: true, CondicaoUsadoRegular: true,
}

// ValidStatus reports whether s is a known product status.
func ValidStatus(s string) bool { return validStatus[s] }

// ValidCondicao reports whether s is a known garment condition.
func ValidCondicao(s string) bool { return validCondicoes[s] }

// ValidTamanho reports whether s is a known size label.
func ValidTamanho(s string) bool { return validTamanhos[s] }

// Product represents a row of the `produtos` table.  Every product belongs
// to exactly one category.  Visualizacoes and Favoritado are read-path
// counters incremented in SQL so concurrent requests never lose updates.
type Product struct {
	ID                uint64          // produtos.id
	Nome              string          // produtos.nome
	Descricao         sql.NullString  // produtos.descricao
	Marca             sql.NullString  // produtos.marca
	CorPrincipal      sql.NullString  // produtos.cor_principal
	Tamanho           string          // produtos.tamanho
	Condicao          string          // produtos.condicao
	PrecoOriginal     sql.NullFloat64 // produtos.preco_original (price when new)
	PrecoVenda        float64         // produtos.preco_venda
	Status            string          // produtos.status
	CategoriaID       uint64          // produtos.categoria_id (FK, required)
	CategoriaNome     string          // joined from categorias.nome, not a column
	AnoAproximado     sql.NullInt64   // produtos.ano_aproximado
	Material          sql.NullString  // produtos.material
	Cuidados          sql.NullString  // produtos.cuidados (washing instructions)
	HistoriaPeca      sql.NullString  // produtos.historia_peca
	ImagemPrincipal   sql.NullString  // produtos.imagem_principal
	ImagensAdicionais sql.NullString  // produtos.imagens_adicionais (JSON blob)
	Visualizacoes     uint64          // produtos.visualizacoes
	Favoritado        uint64          // produtos.favoritado
	CreatedAt         time.Time       // produtos.created_at
	UpdatedAt         time.Time       // produtos.updated_at
}
