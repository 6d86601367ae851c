package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Estados de User. Solo un usuario activo puede iniciar sesión.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User operador del panel administrativo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operator
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin usuario activo.
func (u *User) CanLogin() bool { return u.Status == UserStatusActive }
