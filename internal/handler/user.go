package handler

// user.go covers profile self-service (view, merge-patch update, password
// change) and the admin user-management endpoints.  Users are never
// hard-deleted: the admin delete deactivates the account, which cuts off
// every require-active-gated call while keeping orders and addresses owned.

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/config"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/middleware"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/utils"
)

type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type perfilUpdateReq struct {
	Nome     *string `json:"nome"`
	Telefone *string `json:"telefone"`
	CPF      *string `json:"cpf"`
}

type senhaChangeReq struct {
	SenhaAtual string `json:"senha_atual"`
	SenhaNova  string `json:"senha_nova"`
}

// Perfil returns the logged-in user's profile.
func (h *UserHandler) Perfil(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// UpdatePerfil merge-patches the editable profile fields.  Absent fields are
// untouched; a present empty telefone/cpf clears the column.
func (h *UserHandler) UpdatePerfil(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
	}
	var req perfilUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "corpo invalido"})
	}
	if req.Nome != nil && *req.Nome == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome nao pode ser vazio"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Users.UpdateProfile(ctx, u.ID, repository.ProfilePatch{
		Nome:     req.Nome,
		Telefone: req.Telefone,
		CPF:      req.CPF,
	})
	if err != nil {
		if err == repository.ErrCPFExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cpf ja cadastrado por outro usuario"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao atualizar perfil"})
	}

	updated, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toUserResp(updated))
}

// AlterarSenha verifies the current password before storing the new hash.
func (h *UserHandler) AlterarSenha(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
	}
	var req senhaChangeReq
	if err := c.Bind(&req); err != nil || req.SenhaNova == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "senha_atual e senha_nova sao obrigatorias"})
	}
	if !utils.VerifyPassword(u.SenhaHash, req.SenhaAtual) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "senha atual incorreta"})
	}

	hash, err := utils.HashPassword(req.SenhaNova, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao alterar senha"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao alterar senha"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "senha alterada com sucesso"})
}

// ----- admin-gated user management -----

// List returns users with skip/limit pagination.
func (h *UserHandler) List(c echo.Context) error {
	skip := atoiClamp(c.QueryParam("skip"), 0, 0, 1<<30)
	limit := atoiClamp(c.QueryParam("limit"), 50, 1, 100)

	users, err := h.Users.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID returns one user by id.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// SetAtivo toggles the active flag from the ?ativo=true|false query param.
func (h *UserHandler) SetAtivo(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	ativo, err := strconv.ParseBool(c.QueryParam("ativo"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "parametro ativo invalido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	if err := h.Users.SetAtivo(ctx, id, ativo); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao atualizar usuario"})
	}
	msg := "usuario desativado com sucesso"
	if ativo {
		msg = "usuario ativado com sucesso"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// SetTipo changes the user type from the ?tipo=cliente|admin query param.
func (h *UserHandler) SetTipo(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	tipo := c.QueryParam("tipo")
	if tipo != model.UserTypeCliente && tipo != model.UserTypeAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "parametro tipo invalido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	if err := h.Users.SetTipo(ctx, id, tipo); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao atualizar usuario"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "tipo do usuario alterado para " + tipo})
}

// Delete deactivates the account.  The row stays so history keeps an owner.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id invalido"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario nao encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha na consulta"})
	}
	if err := h.Users.SetAtivo(ctx, id, false); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao remover usuario"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "usuario removido com sucesso"})
}
