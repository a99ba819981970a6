package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User usuario del sistema; actor de los movimientos de stock que dispara.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
