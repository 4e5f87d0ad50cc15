package model

import "database/sql"

// Category represents a row of the `categorias` table.  Categories are
// read-mostly; products reference them through a required foreign key.
type Category struct {
	ID           uint64         // categorias.id
	Nome         string         // categorias.nome (unique)
	Descricao    sql.NullString // categorias.descricao
	Ativa        bool           // categorias.ativa
	OrdemExibicao int           // categorias.ordem_exibicao
}
