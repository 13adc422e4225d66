package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

func TestEscenario_IngresoYEgresoMarcanCritico(t *testing.T) {
	reg := inventory.NewProductRegistry()
	p := registerMouse(t, reg)
	assert.Equal(t, "P001", p.Code())
	assert.Equal(t, 0, p.CurrentStock())

	ledger := inventory.NewLedger()
	in, err := inventory.NewStockIn(p, 10, testOperator)
	require.NoError(t, err)
	require.NoError(t, ledger.Record(in))
	assert.Equal(t, 10, p.CurrentStock())
	assert.False(t, p.IsCritical())

	out, err := inventory.NewStockOut(p, 7, testOperator)
	require.NoError(t, err)
	require.NoError(t, ledger.Record(out))
	assert.Equal(t, 3, p.CurrentStock())
	assert.True(t, p.IsCritical())
	assert.Equal(t, 2, ledger.Len())
}

func TestEscenario_EgresoMayorAlStockSeRechaza(t *testing.T) {
	p, ledger := productWithStock(t, 3)

	out, err := inventory.NewStockOut(p, 100, testOperator)
	require.NoError(t, err)
	err = ledger.Record(out)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 100, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, "P001", insufficient.ProductCode)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, p.CurrentStock())
	assert.Equal(t, 1, ledger.Len(), "el egreso rechazado no debe quedar en el historial")
}

func TestEscenario_AjusteNegativoQueDejaStockNegativoSeRechaza(t *testing.T) {
	p, ledger := productWithStock(t, 3)

	adj, err := inventory.NewAdjustment(p, -5, "damaged", testOperator)
	require.NoError(t, err)
	err = ledger.Record(adj)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 3, p.CurrentStock())
}

func TestEscenario_AjustePositivoConservaJustificacion(t *testing.T) {
	p, ledger := productWithStock(t, 3)

	adj, err := inventory.NewAdjustment(p, 2, "recount", testOperator)
	require.NoError(t, err)
	require.NoError(t, ledger.Record(adj))

	assert.Equal(t, 5, p.CurrentStock())
	history := ledger.History()
	require.Len(t, history, 2)
	assert.Equal(t, "recount", history[1].Justification())
	assert.Equal(t, inventory.KindAdjustment, history[1].Kind())
}

func TestApplyDelta_StockNuncaNegativo(t *testing.T) {
	p, _ := productWithStock(t, 4)

	deltas := []int{-3, -2, 5, -7, -1, 10, -10, -1}
	for _, d := range deltas {
		before := p.CurrentStock()
		err := inventory.ApplyDelta(p, d)
		if before+d < 0 {
			require.Error(t, err)
			assert.Equal(t, before, p.CurrentStock())
		} else {
			require.NoError(t, err)
			assert.Equal(t, before+d, p.CurrentStock())
		}
		assert.GreaterOrEqual(t, p.CurrentStock(), 0)
	}
}

func TestApplyDelta_DejarEnCeroEsValido(t *testing.T) {
	p, _ := productWithStock(t, 4)
	require.NoError(t, inventory.ApplyDelta(p, -4))
	assert.Equal(t, 0, p.CurrentStock())
}

func TestIsCritical_IgualAlMinimoNoEsCritico(t *testing.T) {
	p, _ := productWithStock(t, 5)
	assert.False(t, inventory.IsCritical(p))
	require.NoError(t, inventory.ApplyDelta(p, -1))
	assert.True(t, inventory.IsCritical(p))
}

func TestIngresoYEgreso_IdaYVuelta(t *testing.T) {
	for _, q := range []int{1, 3, 50} {
		p, ledger := productWithStock(t, 8)

		in, err := inventory.NewStockIn(p, q, testOperator)
		require.NoError(t, err)
		require.NoError(t, ledger.Record(in))
		out, err := inventory.NewStockOut(p, q, testOperator)
		require.NoError(t, err)
		require.NoError(t, ledger.Record(out))

		assert.Equal(t, 8, p.CurrentStock(), "q=%d", q)
	}
}

func TestApplyDelta_NoDesbordaElTope(t *testing.T) {
	p, ledger := productWithStock(t, inventory.MaxStock-5)

	in, err := inventory.NewStockIn(p, 10, testOperator)
	require.NoError(t, err)
	err = ledger.Record(in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, inventory.MaxStock-5, p.CurrentStock())

	in, err = inventory.NewStockIn(p, 5, testOperator)
	require.NoError(t, err)
	require.NoError(t, ledger.Record(in))
	assert.Equal(t, inventory.MaxStock, p.CurrentStock())
}

func TestNuevosMovimientos_CantidadSobreElTope(t *testing.T) {
	p, _ := productWithStock(t, 0)

	_, err := inventory.NewStockIn(p, inventory.MaxStock+1, testOperator)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = inventory.NewStockOut(p, inventory.MaxStock+1, testOperator)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = inventory.NewAdjustment(p, -inventory.MaxStock-1, "recuento", testOperator)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
