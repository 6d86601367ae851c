package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/internal/application/auth"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Rental-api/pkg/jwt"
)

type memUsers struct{ byEmail map[string]*entity.User }

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}
func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrNotFound
}

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(&memUsers{byEmail: map[string]*entity.User{}}, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ops@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", user.Email)
	assert.Equal(t, entity.RoleOperator, user.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ops@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ops@example.com", Password: "password123"})
	require.NoError(t, err)
	userID, role, err := pkgjwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleOperator, role)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "password123", Role: "admin"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.co", Password: "password123"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newAuth()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "short"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "password123", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "nope", Password: "password123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMe_Y_UsuarioInactivo(t *testing.T) {
	ctx := context.Background()
	users := &memUsers{byEmail: map[string]*entity.User{}}
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 5})

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ops@b.co", Password: "password123", Name: "Ops"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ops", me.Name)

	_, err = uc.Me(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	users.byEmail["ops@b.co"].Status = entity.UserStatusInactive
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ops@b.co", Password: "password123"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	_, err = uc.Me(ctx, u.ID)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	users := &memUsers{byEmail: map[string]*entity.User{}}
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 5})

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ops@b.co", Password: "password123"})
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "otra-cosa", NewPassword: "nueva-clave-1"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "corta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = uc.ChangePassword(ctx, "no-existe", dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "nueva-clave-1"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "nueva-clave-1"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ops@b.co", Password: "password123"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ops@b.co", Password: "nueva-clave-1"})
	assert.NoError(t, err)
}
