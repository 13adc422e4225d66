package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log de movimientos (tabla movimientos). Solo inserta y lista.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta una fila; la cantidad ya viene con signo persistido (egresos negativos).
func (r *MovementRepo) Create(ctx context.Context, row inventory.MovementRow) error {
	query := `
		INSERT INTO movimientos (id, tipo, fecha, cantidad, justificacion, producto_codigo, usuario_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(ctx, query,
		row.ID, row.Type, row.Timestamp, row.Quantity, row.Justification, row.ProductCode, row.UserID,
	)
	if err != nil {
		return writeError("insert movement "+row.ID, err)
	}
	return nil
}

// List devuelve todas las filas en orden de inserción; RebuildFrom las reordena por fecha.
func (r *MovementRepo) List(ctx context.Context) ([]inventory.MovementRow, error) {
	query := `
		SELECT id, tipo, fecha, cantidad, COALESCE(justificacion, ''), producto_codigo, usuario_id
		FROM movimientos ORDER BY seq`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []inventory.MovementRow
	for rows.Next() {
		var m inventory.MovementRow
		if err := rows.Scan(&m.ID, &m.Type, &m.Timestamp, &m.Quantity, &m.Justification, &m.ProductCode, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
