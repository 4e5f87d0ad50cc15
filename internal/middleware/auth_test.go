package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/CGDEV2002/Brecho-E-commerce/internal/model"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/repository"
	"github.com/CGDEV2002/Brecho-E-commerce/internal/utils"
)

const testSecret = "segredo-de-teste"

// fakeUserFinder resolves token subjects from a fixed map.
type fakeUserFinder map[string]model.User

func (f fakeUserFinder) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f[email]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func okHandler(c echo.Context) error {
	u, _ := CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"email": u.Email})
}

// run sends a request through the given chain and returns the recorder.
func run(t *testing.T, chain echo.HandlerFunc, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := chain(c); err != nil {
		t.Fatalf("chain returned error: %v", err)
	}
	return rec
}

func bearerFor(t *testing.T, email string, id uint64, ttlDays int) string {
	t.Helper()
	access, err := utils.NewAccessToken(testSecret, email, id, ttlDays)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	return "Bearer " + access.Token
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	users := fakeUserFinder{
		"ana@example.com": {ID: 7, Email: "ana@example.com", Ativo: true},
	}
	chain := Authenticate(testSecret, users)(okHandler)

	rec := run(t, chain, bearerFor(t, "ana@example.com", 7, 30))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	t.Parallel()

	chain := Authenticate(testSecret, fakeUserFinder{})(okHandler)
	if rec := run(t, chain, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	t.Parallel()

	users := fakeUserFinder{
		"ana@example.com": {ID: 7, Email: "ana@example.com", Ativo: true},
	}
	chain := Authenticate(testSecret, users)(okHandler)

	if rec := run(t, chain, bearerFor(t, "ana@example.com", 7, -1)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
}

func TestAuthenticate_UnknownSubject(t *testing.T) {
	t.Parallel()

	// Signature verifies but the subject no longer resolves in the store.
	chain := Authenticate(testSecret, fakeUserFinder{})(okHandler)
	if rec := run(t, chain, bearerFor(t, "sumiu@example.com", 9, 30)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
}

func TestRequireActive_InactiveUser(t *testing.T) {
	t.Parallel()

	users := fakeUserFinder{
		"ana@example.com": {ID: 7, Email: "ana@example.com", Ativo: false},
	}
	chain := Authenticate(testSecret, users)(RequireActive()(okHandler))

	rec := run(t, chain, bearerFor(t, "ana@example.com", 7, 30))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	users := fakeUserFinder{
		"ana@example.com":   {ID: 7, Email: "ana@example.com", Ativo: true, Tipo: model.UserTypeCliente},
		"admin@example.com": {ID: 1, Email: "admin@example.com", Ativo: true, Tipo: model.UserTypeAdmin},
	}
	chain := Authenticate(testSecret, users)(RequireActive()(RequireAdmin()(okHandler)))

	if rec := run(t, chain, bearerFor(t, "ana@example.com", 7, 30)); rec.Code != http.StatusForbidden {
		t.Fatalf("cliente: got %d want 403", rec.Code)
	}
	if rec := run(t, chain, bearerFor(t, "admin@example.com", 1, 30)); rec.Code != http.StatusOK {
		t.Fatalf("admin: got %d want 200", rec.Code)
	}
}
