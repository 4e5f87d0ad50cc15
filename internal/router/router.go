// Package router wires every HTTP route to its handler and applies the
// middleware chain each group needs.  Three tiers exist: public (catalog,
// cart, auth entry points), authenticated (profile, logout) and admin
// (catalog mutations, user management, dashboard).
package router

import (
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/config"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/handler"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/middleware"
)

// Handlers carries every constructed handler the router needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	User     *handler.UserHandler
	Admin    *handler.AdminHandler
	Cart     *handler.CartHandler
}

// Register attaches all routes to e.  rdb may be nil, in which case the
// cache and rate-limit middleware become pass-throughs.
func Register(e *echo.Echo, cfg config.Config, h Handlers, users middleware.UserFinder, rdb *redis.Client) {
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	authn := middleware.Authenticate(cfg.JWTSecret, users)
	active := middleware.RequireActive()
	admin := middleware.RequireAdmin()

	// Cached catalog reads.  The product detail route is deliberately NOT
	// cached: every fetch must bump the view counter.
	cache := middleware.CatalogCache(config.LoadCacheConfig(), rdb)

	e.GET("/health", handler.Health)

	// auth
	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", h.Auth.Me, authn, active)
	auth.POST("/logout", h.Auth.Logout, authn, active)

	// public catalog
	e.GET("/produtos", h.Product.List, cache)
	e.GET("/produtos/mais-vistos", h.Product.MaisVistos, cache)
	e.GET("/produtos/lancamentos", h.Product.Lancamentos, cache)
	e.GET("/produtos/categoria/:categoria_id", h.Product.PorCategoria, cache)
	e.GET("/produtos/:id", h.Product.Get)
	e.POST("/produtos/:id/favoritar", h.Product.Favoritar)

	// categories: listing is public, creation is admin
	e.GET("/categorias", h.Category.List, cache)
	e.POST("/categorias", h.Category.Create, authn, active, admin)

	// admin catalog mutations live under /produtos like the public reads,
	// differing only in method and middleware chain
	e.POST("/produtos", h.Admin.CreateProduto, authn, active, admin)
	e.PUT("/produtos/:id", h.Admin.UpdateProduto, authn, active, admin)
	e.DELETE("/produtos/:id", h.Admin.DeleteProduto, authn, active, admin)

	// profile self-service
	usuarios := e.Group("/usuarios", authn, active)
	usuarios.GET("/perfil", h.User.Perfil)
	usuarios.PUT("/perfil", h.User.UpdatePerfil)
	usuarios.POST("/alterar-senha", h.User.AlterarSenha)

	// admin user management
	usuarios.GET("", h.User.List, admin)
	usuarios.GET("/:id", h.User.GetByID, admin)
	usuarios.PUT("/:id/ativo", h.User.SetAtivo, admin)
	usuarios.PUT("/:id/tipo", h.User.SetTipo, admin)
	usuarios.DELETE("/:id", h.User.Delete, admin)

	// admin panel
	adminGrp := e.Group("/admin", authn, active, admin)
	adminGrp.GET("/dashboard", h.Admin.Dashboard)
	adminGrp.GET("/produtos", h.Admin.ListProdutos)

	// cookie cart, fully public
	carrinho := e.Group("/carrinho")
	carrinho.GET("", h.Cart.Ver)
	carrinho.POST("/adicionar", h.Cart.Adicionar)
	carrinho.DELETE("/remover/:id", h.Cart.Remover)
	carrinho.GET("/total", h.Cart.Total)
	carrinho.DELETE("/limpar", h.Cart.Limpar)
	carrinho.GET("/whatsapp", h.Cart.Whatsapp)
}
