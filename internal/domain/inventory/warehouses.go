package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
)

// WarehouseLoader obtiene los depósitos desde el almacenamiento.
type WarehouseLoader func(ctx context.Context) ([]entity.Warehouse, error)

// WarehouseRegistry depósitos conocidos por la sesión.
// Se construye explícitamente y solo cambia con Reload; las lecturas pueden ser concurrentes.
type WarehouseRegistry struct {
	mu        sync.RWMutex
	items     []entity.Warehouse
	defaultID int
}

// NewWarehouseRegistry crea el registro con el ID del depósito por defecto.
func NewWarehouseRegistry(defaultID int, warehouses ...entity.Warehouse) *WarehouseRegistry {
	r := &WarehouseRegistry{defaultID: defaultID}
	r.items = append(r.items, warehouses...)
	return r
}

// Reload reemplaza la lista completa. Si el loader falla se conserva la anterior.
func (r *WarehouseRegistry) Reload(ctx context.Context, load WarehouseLoader) (int, error) {
	items, err := load(ctx)
	if err != nil {
		return 0, fmt.Errorf("recargar depósitos: %w", err)
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return len(items), nil
}

// List copia de los depósitos.
func (r *WarehouseRegistry) List() []entity.Warehouse {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Warehouse, len(r.items))
	copy(out, r.items)
	return out
}

// Find busca un depósito por ID.
func (r *WarehouseRegistry) Find(id int) (entity.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.items {
		if w.ID == id {
			return w, nil
		}
	}
	return entity.Warehouse{}, fmt.Errorf("depósito %d: %w", id, domain.ErrNotFound)
}

// Default depósito por defecto (ErrNotFound si no está cargado).
func (r *WarehouseRegistry) Default() (entity.Warehouse, error) {
	return r.Find(r.defaultID)
}
