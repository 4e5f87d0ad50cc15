package handler

// response.go holds the JSON view models shared by the catalog and admin
// endpoints.  Wire field names stay in Portuguese: the storefront that
// consumes this API was built against them.

import (
	"database/sql"
	"time"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
)

type produtoResp struct {
	ID                uint64   `json:"id"`
	Nome              string   `json:"nome"`
	Descricao         *string  `json:"descricao"`
	Marca             *string  `json:"marca"`
	CorPrincipal      *string  `json:"cor_principal"`
	Tamanho           string   `json:"tamanho"`
	Condicao          string   `json:"condicao"`
	PrecoOriginal     *float64 `json:"preco_original"`
	PrecoVenda        float64  `json:"preco_venda"`
	Status            string   `json:"status"`
	CategoriaID       uint64   `json:"categoria_id"`
	CategoriaNome     string   `json:"categoria_nome"`
	AnoAproximado     *int64   `json:"ano_aproximado"`
	Material          *string  `json:"material"`
	Cuidados          *string  `json:"cuidados"`
	HistoriaPeca      *string  `json:"historia_peca"`
	ImagemPrincipal   *string  `json:"imagem_principal"`
	ImagensAdicionais *string  `json:"imagens_adicionais"`
	Visualizacoes     uint64   `json:"visualizacoes"`
	Favoritado        uint64   `json:"favoritado"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func toProdutoResp(p model.Product) produtoResp {
	return produtoResp{
		ID:                p.ID,
		Nome:              p.Nome,
		Descricao:         strPtr(p.Descricao),
		Marca:             strPtr(p.Marca),
		CorPrincipal:      strPtr(p.CorPrincipal),
		Tamanho:           p.Tamanho,
		Condicao:          p.Condicao,
		PrecoOriginal:     floatPtr(p.PrecoOriginal),
		PrecoVenda:        p.PrecoVenda,
		Status:            p.Status,
		CategoriaID:       p.CategoriaID,
		CategoriaNome:     p.CategoriaNome,
		AnoAproximado:     intPtr(p.AnoAproximado),
		Material:          strPtr(p.Material),
		Cuidados:          strPtr(p.Cuidados),
		HistoriaPeca:      strPtr(p.HistoriaPeca),
		ImagemPrincipal:   strPtr(p.ImagemPrincipal),
		ImagensAdicionais: strPtr(p.ImagensAdicionais),
		Visualizacoes:     p.Visualizacoes,
		Favoritado:        p.Favoritado,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toProdutoList(ps []model.Product) []produtoResp {
	out := make([]produtoResp, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProdutoResp(p))
	}
	return out
}

// userResp is the public profile echo: the password hash never leaves the
// repository layer.
type userResp struct {
	ID              uint64  `json:"id"`
	Nome            string  `json:"nome"`
	Email           string  `json:"email"`
	Telefone        *string `json:"telefone,omitempty"`
	CPF             *string `json:"cpf,omitempty"`
	Tipo            string  `json:"tipo"`
	Ativo           bool    `json:"ativo"`
	EmailVerificado bool    `json:"email_verificado"`
	CreatedAt       string  `json:"created_at"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID:              u.ID,
		Nome:            u.Nome,
		Email:           u.Email,
		Telefone:        strPtr(u.Telefone),
		CPF:             strPtr(u.CPF),
		Tipo:            u.Tipo,
		Ativo:           u.Ativo,
		EmailVerificado: u.EmailVerificado,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func intPtr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
