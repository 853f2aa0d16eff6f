package entity

import "time"

// Roles de usuario.
const (
	RoleManager = "manager" // gestor de inventario
	RoleStaff   = "staff"   // personal de bodega
)

// MaxResetAttempts intentos fallidos de verificación antes de invalidar el código.
const MaxResetAttempts = 5

// User cuenta de acceso a la API. Los campos Reset* sostienen el flujo de
// recuperación de contraseña por código de un solo uso; se limpian tras un
// reset exitoso, al expirar o al agotar los intentos.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FullName        string
	Role            string // manager | staff
	IsActive        bool
	ResetCode       string     // "" = sin código pendiente
	ResetCodeExpiry *time.Time // nil = sin código pendiente
	ResetAttempts   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClearResetCode limpia el código de recuperación y su estado asociado.
func (u *User) ClearResetCode() {
	u.ResetCode = ""
	u.ResetCodeExpiry = nil
	u.ResetAttempts = 0
}
