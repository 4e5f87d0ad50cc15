package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/CGDEV2002/Brecho-E-commerce/internal/config"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/middleware"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.  Login is the
// only place in the whole API where a token is minted.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Telefone string `json:"telefone"`
}

// tokenResp mirrors the original login payload: the bearer token plus a
// minimal identity echo so the frontend can greet the user without another
// round trip.
type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint64 `json:"user_id"`
	UserName    string `json:"user_name"`
}

// Register creates a customer account.  Duplicate emails are a 400, matching
// the contract the storefront already handles.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "corpo invalido"})
	}
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome, email e senha sao obrigatorios"})
	}

	hash, err := utils.HashPassword(req.Senha, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao criar usuario"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Nome, req.Email, hash, strings.TrimSpace(req.Telefone))
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email ja cadastrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao criar usuario"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao criar usuario"})
	}
	return c.JSON(http.StatusCreated, toUserResp(u))
}

// Login verifies form-encoded credentials and issues a 30-day access token.
// Unknown email, wrong password and deactivated account all collapse into
// the same 401 so the endpoint leaks nothing about which part failed.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username e password sao obrigatorios"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "email ou senha incorretos"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	if !utils.VerifyPassword(u.SenhaHash, password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "email ou senha incorretos"})
	}
	if !u.Ativo {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "usuario inativo"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Email, u.ID, h.Cfg.JWTExpDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao emitir token"})
	}

	return c.JSON(http.StatusOK, tokenResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		UserID:      u.ID,
		UserName:    u.Nome,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Logout exists for frontend symmetry only: tokens are stateless and are
// never revoked server-side, so the client just discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logout realizado com sucesso"})
}
