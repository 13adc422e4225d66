package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/gametech-stock/internal/domain"
)

// Product es un producto del stock.
// currentStock solo cambia vía ApplyDelta; RestoreProduct lo fija una única vez al cargar desde BD.
type Product struct {
	code         string
	Name         string
	Category     string
	MinimumStock int
	WarehouseID  *int
	currentStock int
}

// NewProductInput datos para registrar un producto nuevo.
type NewProductInput struct {
	Name         string
	Category     string
	MinimumStock int
	WarehouseID  *int
}

// Validate verifica los campos obligatorios.
func (in NewProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "requerido"}
	}
	if strings.TrimSpace(in.Category) == "" {
		return &domain.ValidationError{Field: "category", Message: "requerido"}
	}
	if in.MinimumStock < 0 {
		return &domain.ValidationError{Field: "minimum_stock", Message: "no puede ser negativo"}
	}
	return nil
}

// NewProduct crea un producto sin código y con stock 0.
func NewProduct(in NewProductInput) *Product {
	return &Product{
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		MinimumStock: in.MinimumStock,
		WarehouseID:  in.WarehouseID,
	}
}

// RestoreProduct reconstruye un producto persistido con su stock actual.
func RestoreProduct(code, name, category string, minimumStock, currentStock int, warehouseID *int) (*Product, error) {
	if _, ok := parseCode(code); !ok {
		return nil, &domain.ValidationError{Field: "code", Message: fmt.Sprintf("formato inválido %q", code)}
	}
	if currentStock < 0 {
		return nil, &domain.ValidationError{Field: "current_stock", Message: "no puede ser negativo"}
	}
	return &Product{
		code:         code,
		Name:         name,
		Category:     category,
		MinimumStock: minimumStock,
		WarehouseID:  warehouseID,
		currentStock: currentStock,
	}, nil
}

// Code devuelve el código asignado (vacío si aún no se registró).
func (p *Product) Code() string { return p.code }

// CurrentStock devuelve el stock actual.
func (p *Product) CurrentStock() int { return p.currentStock }

// IsCritical indica si el stock actual está por debajo del mínimo.
func (p *Product) IsCritical() bool { return IsCritical(p) }

// assignCode fija el código una sola vez.
func (p *Product) assignCode(code string) error {
	if p.code != "" {
		return &domain.ConflictError{Code: p.code}
	}
	p.code = code
	return nil
}
