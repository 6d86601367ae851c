package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
	"github.com/jhoicas/Rental-api/pkg/jwt"
)

const minPasswordLength = 8

// JWTConfig parámetros de firma de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login y perfil de los operadores del panel.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// RegisterUser crea un operador con la contraseña hasheada (bcrypt).
// Rol por defecto operator; ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	role, err := checkRegistration(email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Login valida credenciales y emite un JWT con id y rol.
// Email desconocido -> ErrUserNotFound, contraseña errada -> ErrUnauthorized,
// usuario inactivo -> ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.CanLogin() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(u)}, nil
}

// Me perfil del operador autenticado (cabecera del panel).
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CanLogin() {
		return nil, domain.ErrUnauthorized
	}
	return toUserResponse(u), nil
}

// ChangePassword verifica la contraseña actual y guarda la nueva.
// Contraseña actual errada -> ErrUnauthorized; nueva corta o igual a la actual -> ErrInvalidInput.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil || !u.CanLogin() {
		return domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return domain.ErrUnauthorized
	}
	if len(in.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
	}
	if in.NewPassword == in.CurrentPassword {
		return fmt.Errorf("%w: la nueva contraseña debe ser distinta", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	return uc.users.UpdatePassword(ctx, u.ID, string(hash))
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// checkRegistration devuelve el rol efectivo.
func checkRegistration(email, password, role string) (string, error) {
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
	}
	switch role {
	case "":
		return entity.RoleOperator, nil
	case entity.RoleAdmin, entity.RoleOperator:
		return role, nil
	default:
		return "", fmt.Errorf("%w: role debe ser admin u operator", domain.ErrInvalidInput)
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
