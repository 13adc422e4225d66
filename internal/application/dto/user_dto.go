package dto

import "time"

// UserResponse salida de un usuario (sin credenciales).
type UserResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// LoginRequest entrada para login con nombre de usuario.
type LoginRequest struct {
	Login    string `json:"login" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
