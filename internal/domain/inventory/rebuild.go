package inventory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
)

// MovementRow fila persistida de la tabla movimientos.
// Quantity sigue la convención de PersistedQuantity (egresos negativos).
type MovementRow struct {
	ID            string
	Type          string
	Timestamp     time.Time
	Quantity      int
	Justification string
	ProductCode   string
	UserID        int
}

// RowFromMovement convierte un movimiento al formato persistido.
func RowFromMovement(m *Movement) MovementRow {
	return MovementRow{
		ID:            m.id,
		Type:          m.kind.String(),
		Timestamp:     m.timestamp,
		Quantity:      PersistedQuantity(m),
		Justification: m.justification,
		ProductCode:   m.product.code,
		UserID:        m.actor.ID,
	}
}

// ProductLookup resuelve un producto por código.
type ProductLookup func(code string) (*Product, bool)

// UserLookup resuelve un usuario por ID.
type UserLookup func(id int) (*entity.User, bool)

// RebuildMode define si la reconstrucción vuelve a aplicar los movimientos sobre el stock.
type RebuildMode int

const (
	// TrustStock: el stock cargado ya refleja el log; los movimientos se insertan sin aplicarse.
	TrustStock RebuildMode = iota
	// ReplayStock: cada fila pasa por ApplyDelta en orden cronológico.
	ReplayStock
)

// ParseRebuildMode "trust" o "replay".
func ParseRebuildMode(s string) (RebuildMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trust":
		return TrustStock, nil
	case "replay":
		return ReplayStock, nil
	}
	return TrustStock, fmt.Errorf("modo de reconstrucción desconocido %q", s)
}

// SkippedRow fila descartada durante la reconstrucción y el motivo.
type SkippedRow struct {
	Row    MovementRow
	Reason error
}

// RebuildReport resultado de RebuildFrom. Las filas descartadas no son fatales.
type RebuildReport struct {
	Loaded  int
	Skipped []SkippedRow
}

// RebuildFrom reconstruye el ledger desde filas persistidas (en cualquier orden).
// Las filas se ordenan por fecha ascendente; las que referencian productos o usuarios
// inexistentes se descartan y quedan en el reporte.
func RebuildFrom(rows []MovementRow, products ProductLookup, users UserLookup, mode RebuildMode) (*Ledger, RebuildReport) {
	sorted := make([]MovementRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	ledger := NewLedger()
	var report RebuildReport
	skip := func(row MovementRow, reason error) {
		report.Skipped = append(report.Skipped, SkippedRow{Row: row, Reason: reason})
	}

	for _, row := range sorted {
		m, err := restoreMovement(row, products, users)
		if err != nil {
			skip(row, err)
			continue
		}
		if _, dup := ledger.ids[m.id]; dup {
			skip(row, domain.ErrConflict)
			continue
		}
		if mode == ReplayStock {
			if err := ApplyDelta(m.product, SignedDelta(m)); err != nil {
				skip(row, err)
				continue
			}
		}
		ledger.append(m)
		report.Loaded++
	}
	return ledger, report
}

func restoreMovement(row MovementRow, products ProductLookup, users UserLookup) (*Movement, error) {
	kind, err := ParseKind(row.Type)
	if err != nil {
		return nil, err
	}
	product, ok := products(row.ProductCode)
	if !ok {
		return nil, fmt.Errorf("producto %q: %w", row.ProductCode, domain.ErrNotFound)
	}
	user, ok := users(row.UserID)
	if !ok {
		return nil, fmt.Errorf("usuario %d: %w", row.UserID, domain.ErrUserNotFound)
	}

	quantity := row.Quantity
	justification := strings.TrimSpace(row.Justification)
	switch kind {
	case KindStockIn:
		justification = ""
	case KindStockOut:
		// persistido negativo
		if quantity < 0 {
			quantity = -quantity
		}
		justification = ""
	case KindAdjustment:
		if justification == "" {
			return nil, &domain.ValidationError{Field: "justification", Message: "ajuste sin justificación"}
		}
	}
	if quantity == 0 || (kind == KindStockIn && quantity < 0) {
		return nil, &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("cantidad inválida %d", row.Quantity)}
	}

	id := row.ID
	if id == "" {
		id = uuid.New().String()
	}
	return &Movement{
		id:            id,
		kind:          kind,
		timestamp:     row.Timestamp,
		quantity:      quantity,
		product:       product,
		actor:         user,
		justification: justification,
	}, nil
}
