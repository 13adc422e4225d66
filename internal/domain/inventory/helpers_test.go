package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

var testOperator = &entity.User{ID: 7, Name: "Ana", Login: "ana", Role: entity.RoleOperator}

// registerMouse registra el producto del escenario base: "Mouse", mínimo 5.
func registerMouse(t *testing.T, reg *inventory.ProductRegistry) *inventory.Product {
	t.Helper()
	p, err := reg.Register(inventory.NewProductInput{Name: "Mouse", Category: "Periféricos", MinimumStock: 5})
	require.NoError(t, err)
	return p
}

// productWithStock producto ya registrado con el stock indicado, cargado desde un ingreso.
func productWithStock(t *testing.T, stock int) (*inventory.Product, *inventory.Ledger) {
	t.Helper()
	reg := inventory.NewProductRegistry()
	p := registerMouse(t, reg)
	ledger := inventory.NewLedger()
	if stock > 0 {
		in, err := inventory.NewStockIn(p, stock, testOperator)
		require.NoError(t, err)
		require.NoError(t, ledger.Record(in))
	}
	return p, ledger
}
