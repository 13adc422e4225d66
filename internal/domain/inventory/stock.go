package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/gametech-stock/internal/domain"
)

// MaxStock tope de stock y de cantidad por movimiento (columnas INTEGER).
const MaxStock = math.MaxInt32

// ApplyDelta es el único punto donde cambia el stock de un producto ya creado.
// Si el resultado quedara negativo no modifica nada y devuelve *domain.InsufficientStockError;
// si superara MaxStock devuelve *domain.ValidationError.
func ApplyDelta(p *Product, delta int) error {
	if delta > MaxStock-p.currentStock {
		return &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("el stock de %s superaría %d", p.code, MaxStock)}
	}
	if delta < -p.currentStock {
		return &domain.InsufficientStockError{
			ProductCode: p.code,
			Requested:   -delta,
			Available:   p.currentStock,
		}
	}
	p.currentStock += delta
	return nil
}

// IsCritical stock actual < stock mínimo. Se evalúa siempre, nunca se cachea.
func IsCritical(p *Product) bool {
	return p.currentStock < p.MinimumStock
}
