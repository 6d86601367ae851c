package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/internal/application/auth"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Rental-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Rental-api/pkg/jwt"
)

type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// passwordApp registra un operador y devuelve la app junto con su cabecera Authorization.
func passwordApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	repo := &memUserRepo{users: map[string]*entity.User{}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ops@b.co", Password: "password123"})
	require.NoError(t, err)
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Role, testIssuer, testExpMin)
	require.NoError(t, err)

	h := apphttp.NewAuthHandler(uc)
	app := fiber.New()
	app.Put("/api/auth/password", apphttp.AuthMiddleware(testJWTSecret), h.ChangePassword)
	return app, "Bearer " + tok
}

func putPassword(t *testing.T, app *fiber.App, authHeader, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	app, tok := passwordApp(t)

	assert.Equal(t, http.StatusUnauthorized, putPassword(t, app, "", `{"current_password":"password123","new_password":"nueva-clave-1"}`))
	assert.Equal(t, http.StatusBadRequest, putPassword(t, app, tok, `{"current_password":"password123"}`))
	assert.Equal(t, http.StatusUnauthorized, putPassword(t, app, tok, `{"current_password":"mala-clave","new_password":"nueva-clave-1"}`))
	assert.Equal(t, http.StatusBadRequest, putPassword(t, app, tok, `{"current_password":"password123","new_password":"corta"}`))
	assert.Equal(t, http.StatusNoContent, putPassword(t, app, tok, `{"current_password":"password123","new_password":"nueva-clave-1"}`))
	assert.Equal(t, http.StatusUnauthorized, putPassword(t, app, tok, `{"current_password":"password123","new_password":"otra-clave-2"}`))
}
