package entity

import "time"

// Roles de usuario dentro de una empresa.
const (
	RoleAdmin      = "admin"
	RoleCultivador = "cultivador"
)

// User representa un usuario de la plataforma (pertenece a una empresa).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
