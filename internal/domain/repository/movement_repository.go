package repository

import (
	"context"

	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

// MovementRepository define el puerto de persistencia para el log de movimientos.
// Las filas viajan en formato persistido (egresos negativos).
type MovementRepository interface {
	Create(ctx context.Context, row inventory.MovementRow) error
	List(ctx context.Context) ([]inventory.MovementRow, error)
}
