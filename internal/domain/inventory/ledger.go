package inventory

import (
	"github.com/jhoicas/gametech-stock/internal/domain"
)

// Ledger es el registro ordenado y de solo-anexar de movimientos.
// Record es la única operación que cambia stock.
type Ledger struct {
	movements []*Movement
	ids       map[string]struct{}
}

// NewLedger crea un ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{ids: make(map[string]struct{})}
}

// Record aplica el movimiento vía ApplyDelta y, si el motor lo acepta, lo anexa.
// Es todo o nada: ante un rechazo ni el producto ni el historial cambian.
func (l *Ledger) Record(m *Movement) error {
	if m == nil {
		return &domain.ValidationError{Field: "movement", Message: "requerido"}
	}
	if _, seen := l.ids[m.id]; seen {
		return domain.ErrConflict
	}
	if err := ApplyDelta(m.product, SignedDelta(m)); err != nil {
		return err
	}
	l.append(m)
	return nil
}

func (l *Ledger) append(m *Movement) {
	l.movements = append(l.movements, m)
	l.ids[m.id] = struct{}{}
}

// History devuelve los movimientos del más antiguo al más reciente.
func (l *Ledger) History() []*Movement {
	out := make([]*Movement, len(l.movements))
	copy(out, l.movements)
	return out
}

// ForProduct historial de un producto, en orden.
func (l *Ledger) ForProduct(code string) []*Movement {
	var out []*Movement
	for _, m := range l.movements {
		if m.product.code == code {
			out = append(out, m)
		}
	}
	return out
}

// Len cantidad de movimientos registrados.
func (l *Ledger) Len() int { return len(l.movements) }
