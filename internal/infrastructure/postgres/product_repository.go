package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `codigo, nombre, categoria, stock_minimo, stock_actual, id_deposito`

// Create persiste un producto ya codificado. La PK sobre codigo detecta altas concurrentes.
func (r *ProductRepo) Create(ctx context.Context, p *inventory.Product) error {
	query := `INSERT INTO productos (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		p.Code(), p.Name, p.Category, p.MinimumStock, p.CurrentStock(), p.WarehouseID,
	)
	if err != nil {
		return writeError("insert product "+p.Code(), err)
	}
	return nil
}

// UpdateStock actualiza stock_actual.
func (r *ProductRepo) UpdateStock(ctx context.Context, code string, stock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE productos SET stock_actual = $2 WHERE codigo = $1`, code, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*inventory.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE codigo = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, code))
	if err != nil {
		return nil, readError("producto "+code, err, domain.ErrNotFound)
	}
	return p, nil
}

// List devuelve todos los productos ordenados por el número del código.
func (r *ProductRepo) List(ctx context.Context) ([]*inventory.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos
		ORDER BY length(codigo), codigo`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*inventory.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*inventory.Product, error) {
	var (
		code, name, category string
		minimum, stock       int
		warehouseID          *int
	)
	if err := row.Scan(&code, &name, &category, &minimum, &stock, &warehouseID); err != nil {
		return nil, err
	}
	return inventory.RestoreProduct(code, name, category, minimum, stock, warehouseID)
}
