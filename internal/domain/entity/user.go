package entity

import "time"

// Roles de usuario. admin gestiona la empresa, comptable las tasas y documentos,
// commercial solo calcula y emite documentos.
const (
	RoleAdmin      = "admin"
	RoleComptable  = "comptable"
	RoleCommercial = "commercial"
)

// Estados de cuenta. Solo UserActive puede iniciar sesión.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// User cuenta de acceso ligada a una sola empresa.
type User struct {
	ID           string
	CompanyID    string
	Email        string // minúsculas
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

