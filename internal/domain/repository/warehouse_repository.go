package repository

import (
	"context"

	"github.com/jhoicas/gametech-stock/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Warehouse, error)
	List(ctx context.Context) ([]entity.Warehouse, error)
}
