package users

import "time"

// Role define los roles soportados.
// @Enum patient, caregiver
type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleCaregiver
}

// User representa una identidad registrada en el sistema.
// Inmutable después del registro salvo el password (fuera de alcance acá).
type User struct {
	ID       string
	Name     string
	Username string // único
	Role     Role

	// PasswordHash guarda solo el hash bcrypt, nunca el password plano.
	PasswordHash string

	CreatedAt time.Time
}
