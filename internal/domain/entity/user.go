package entity

import "strings"

// Roles válidos para User (mismo texto que la columna usuarios.rol).
const (
	RoleAdmin     = "ADMIN"
	RoleOperator  = "OPERADOR"
	RoleLogistics = "LOGISTICA"
)

// User representa un usuario del sistema.
// El núcleo de stock solo lee ID y Name para atribuir movimientos.
type User struct {
	ID           int
	Name         string // nombre visible
	Login        string // nombre de usuario para iniciar sesión
	PasswordHash string // opaco para el núcleo
	Role         string // ADMIN, OPERADOR, LOGISTICA
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch strings.ToUpper(role) {
	case RoleAdmin, RoleOperator, RoleLogistics:
		return true
	}
	return false
}
