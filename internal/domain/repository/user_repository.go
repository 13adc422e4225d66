package repository

import (
	"context"

	"github.com/jhoicas/gametech-stock/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*entity.User, error)
	// GetByLogin busca por nombre de usuario; domain.ErrUserNotFound si no existe.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
