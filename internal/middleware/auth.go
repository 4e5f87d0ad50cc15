package middleware // middleware provides shared request processing for handlers

import (
	"context"  // context carries request deadlines into store lookups
	"net/http" // HTTP status codes for responses
	"strconv"  // user id formatting for downstream middleware
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/utils"
)

// UserFinder is the slice of the credential store the authentication step
// needs: resolving a token subject back to a user record.  *repository.UserRepo
// satisfies it; tests substitute an in-memory fake.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// userContextKey is where Authenticate stores the resolved model.User.
const userContextKey = "current_user"

// Authenticate returns the first step of the access-control chain.  It
// validates the Bearer access token (signature + expiry) and then resolves
// the subject email against the credential store, so a token for a deleted
// user stops working immediately even though the signature still verifies.
// On success the resolved user is stored in the request context for the
// later steps and for handlers; every failure mode is a plain 401 with no
// distinction between expired, malformed and unknown-subject tokens.
func Authenticate(secret string, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
			}

			// The subject must still resolve to exactly one user; the chain
			// re-consults the store on every request, no caching.
			u, err := users.GetByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "usuario nao encontrado"})
			}

			c.Set(userContextKey, u)
			// Plain string id for middleware that only needs an identity key
			// (e.g. the rate limiter).
			c.Set("user_id", strconv.FormatUint(u.ID, 10))
			return next(c)
		}
	}
}

// RequireActive is the second chain step: authenticated but deactivated
// accounts are rejected with 400, mirroring the original API contract.
func RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
			}
			if !u.Ativo {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "usuario inativo"})
			}
			return next(c)
		}
	}
}

// RequireAdmin is the third chain step: only admin-typed users pass.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalido"})
			}
			if !u.IsAdmin() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "apenas administradores"})
			}
			return next(c)
		}
	}
}

// CurrentUser retrieves the user resolved by Authenticate, if any.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userContextKey).(model.User)
	return u, ok
}
