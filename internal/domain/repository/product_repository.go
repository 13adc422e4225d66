package repository

import (
	"context"

	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto con su código ya asignado.
	// Devuelve domain.ErrDuplicate si otro escritor tomó el código.
	Create(ctx context.Context, product *inventory.Product) error
	// UpdateStock escribe stock_actual; el valor lo decide siempre el motor en memoria.
	UpdateStock(ctx context.Context, code string, stock int) error
	GetByCode(ctx context.Context, code string) (*inventory.Product, error)
	// List devuelve todos los productos en orden de código.
	List(ctx context.Context) ([]*inventory.Product, error)
}
