package handler

// stores.go declares the store contracts handlers depend on.  The concrete
// repository types satisfy them; tests plug in in-memory fakes.  Handlers
// accept interfaces and the repositories return structs.

import (
	"context"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
)

// UserStore is the credential store surface used by auth and user handlers.
type UserStore interface {
	Create(ctx context.Context, nome, email, senhaHash, telefone string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, skip, limit int) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint64, p repository.ProfilePatch) error
	UpdatePassword(ctx context.Context, id uint64, senhaHash string) error
	SetAtivo(ctx context.Context, id uint64, ativo bool) error
	SetTipo(ctx context.Context, id uint64, tipo string) error
	Count(ctx context.Context) (int64, error)
}

// ProductStore is the catalog store surface used by catalog, admin and cart
// handlers.
type ProductStore interface {
	Create(ctx context.Context, in repository.ProductInput) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Product, error)
	IncrementViews(ctx context.Context, id uint64) error
	Favorite(ctx context.Context, id uint64) (uint64, error)
	Update(ctx context.Context, id uint64, patch repository.ProductPatch) error
	SoftDelete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context, skip, limit int) ([]model.Product, error)
	Search(ctx context.Context, q repository.ProductSearchQuery) ([]model.Product, int64, error)
	Count(ctx context.Context, status string) (int64, error)
}

// CategoryStore is the category surface.
type CategoryStore interface {
	GetByID(ctx context.Context, id uint64) (model.Category, error)
	ListAtivas(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, nome, descricao string, ordem int) (uint64, error)
	Count(ctx context.Context) (int64, error)
}
