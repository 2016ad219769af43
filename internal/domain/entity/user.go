package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del portal interno (staff o administrador).
type User struct {
	ID           string
	Username     string    // único en todo el sistema
	PasswordHash string    // bcrypt hash, nunca plano en dominio después de persistir
	Role         string    // admin, user
	Department   string    // etiqueta de área/unidad (ej. "Purchasing", "QC")
	Status       string    // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
