package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

var t0 = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func usersByID(users ...*entity.User) inventory.UserLookup {
	return func(id int) (*entity.User, bool) {
		for _, u := range users {
			if u.ID == id {
				return u, true
			}
		}
		return nil, false
	}
}

func freshRegistry(t *testing.T, code string, stock int) (*inventory.ProductRegistry, *inventory.Product) {
	t.Helper()
	p, err := inventory.RestoreProduct(code, "Mouse", "Periféricos", 5, stock, nil)
	require.NoError(t, err)
	reg := inventory.NewProductRegistry()
	require.NoError(t, reg.Load(p))
	return reg, p
}

func scenarioRows() []inventory.MovementRow {
	// desordenadas a propósito
	return []inventory.MovementRow{
		{ID: "m3", Type: "AJUSTE", Timestamp: t0.Add(2 * time.Hour), Quantity: 2, Justification: "recount", ProductCode: "P001", UserID: 7},
		{ID: "m1", Type: "INGRESO", Timestamp: t0, Quantity: 10, ProductCode: "P001", UserID: 7},
		{ID: "m2", Type: "EGRESO", Timestamp: t0.Add(time.Hour), Quantity: -7, ProductCode: "P001", UserID: 7},
	}
}

func TestEscenario_ReconstruirDesdeFilasPersistidas(t *testing.T) {
	reg, p := freshRegistry(t, "P001", 0)

	ledger, report := inventory.RebuildFrom(scenarioRows(), reg.Lookup, usersByID(testOperator), inventory.ReplayStock)

	assert.Equal(t, 5, p.CurrentStock())
	assert.Equal(t, 3, report.Loaded)
	assert.Empty(t, report.Skipped)

	history := ledger.History()
	require.Len(t, history, 3)
	assert.Equal(t, "m1", history[0].ID())
	assert.Equal(t, "m2", history[1].ID())
	assert.Equal(t, "m3", history[2].ID())
	assert.Equal(t, 7, history[1].Quantity(), "el egreso persistido negativo se normaliza")
	assert.Equal(t, inventory.KindStockOut, history[1].Kind())
	assert.Equal(t, "recount", history[2].Justification())
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp().Before(history[i-1].Timestamp()))
	}
}

func TestRebuild_TrustStockNoTocaElStock(t *testing.T) {
	reg, p := freshRegistry(t, "P001", 5)

	ledger, report := inventory.RebuildFrom(scenarioRows(), reg.Lookup, usersByID(testOperator), inventory.TrustStock)

	assert.Equal(t, 5, p.CurrentStock())
	assert.Equal(t, 3, ledger.Len())
	assert.Equal(t, 3, report.Loaded)
}

func TestRebuild_DescartaFilasHuerfanas(t *testing.T) {
	reg, p := freshRegistry(t, "P001", 0)
	rows := append(scenarioRows(),
		inventory.MovementRow{ID: "x1", Type: "INGRESO", Timestamp: t0, Quantity: 4, ProductCode: "P404", UserID: 7},
		inventory.MovementRow{ID: "x2", Type: "INGRESO", Timestamp: t0, Quantity: 4, ProductCode: "P001", UserID: 99},
		inventory.MovementRow{ID: "x3", Type: "AJUSTE", Timestamp: t0, Quantity: 4, ProductCode: "P001", UserID: 7},
		inventory.MovementRow{ID: "x4", Type: "DEVOLUCION", Timestamp: t0, Quantity: 4, ProductCode: "P001", UserID: 7},
		inventory.MovementRow{ID: "x5", Type: "INGRESO", Timestamp: t0, Quantity: 0, ProductCode: "P001", UserID: 7},
	)

	ledger, report := inventory.RebuildFrom(rows, reg.Lookup, usersByID(testOperator), inventory.ReplayStock)

	assert.Equal(t, 3, ledger.Len())
	assert.Equal(t, 5, p.CurrentStock())
	require.Len(t, report.Skipped, 5)

	reasons := map[string]error{}
	for _, s := range report.Skipped {
		reasons[s.Row.ID] = s.Reason
	}
	assert.ErrorIs(t, reasons["x1"], domain.ErrNotFound)
	assert.ErrorIs(t, reasons["x2"], domain.ErrUserNotFound)
	assert.ErrorIs(t, reasons["x3"], domain.ErrValidation)
	assert.ErrorIs(t, reasons["x4"], domain.ErrValidation)
	assert.ErrorIs(t, reasons["x5"], domain.ErrValidation)
}

func TestRebuild_ReplayDescartaLoQueElMotorRechaza(t *testing.T) {
	reg, p := freshRegistry(t, "P001", 0)
	rows := []inventory.MovementRow{
		{ID: "a", Type: "INGRESO", Timestamp: t0, Quantity: 2, ProductCode: "P001", UserID: 7},
		{ID: "b", Type: "EGRESO", Timestamp: t0.Add(time.Minute), Quantity: -5, ProductCode: "P001", UserID: 7},
		{ID: "a", Type: "INGRESO", Timestamp: t0.Add(2 * time.Minute), Quantity: 2, ProductCode: "P001", UserID: 7},
	}

	ledger, report := inventory.RebuildFrom(rows, reg.Lookup, usersByID(testOperator), inventory.ReplayStock)

	assert.Equal(t, 2, p.CurrentStock())
	assert.Equal(t, 1, ledger.Len())
	require.Len(t, report.Skipped, 2)
	assert.ErrorIs(t, report.Skipped[0].Reason, domain.ErrInsufficientStock)
	assert.ErrorIs(t, report.Skipped[1].Reason, domain.ErrConflict)
}

func TestRebuild_EquivaleAReproducirDesdeCero(t *testing.T) {
	// estado vivo: se registran movimientos y se persisten como filas
	live := inventory.NewProductRegistry()
	mouse := registerMouse(t, live)
	pad, err := live.Register(inventory.NewProductInput{Name: "Pad", Category: "Periféricos", MinimumStock: 2})
	require.NoError(t, err)

	tick := 0
	restore := inventory.SetClock(func() time.Time { tick++; return t0.Add(time.Duration(tick) * time.Second) })
	defer restore()

	ledger := inventory.NewLedger()
	build := []func() (*inventory.Movement, error){
		func() (*inventory.Movement, error) { return inventory.NewStockIn(mouse, 12, testOperator) },
		func() (*inventory.Movement, error) { return inventory.NewStockIn(pad, 4, testOperator) },
		func() (*inventory.Movement, error) { return inventory.NewStockOut(mouse, 5, testOperator) },
		func() (*inventory.Movement, error) { return inventory.NewAdjustment(pad, -1, "rotura", testOperator) },
		func() (*inventory.Movement, error) { return inventory.NewStockOut(pad, 10, testOperator) },
		func() (*inventory.Movement, error) { return inventory.NewAdjustment(mouse, 3, "recount", testOperator) },
	}
	var rows []inventory.MovementRow
	for _, b := range build {
		m, err := b()
		require.NoError(t, err)
		if ledger.Record(m) == nil {
			rows = append(rows, inventory.RowFromMovement(m))
		}
	}

	// reconstrucción contra productos nuevos en 0
	replayReg := inventory.NewProductRegistry()
	for _, p := range live.List() {
		fresh, err := inventory.RestoreProduct(p.Code(), p.Name, p.Category, p.MinimumStock, 0, nil)
		require.NoError(t, err)
		require.NoError(t, replayReg.Load(fresh))
	}
	rebuilt, report := inventory.RebuildFrom(rows, replayReg.Lookup, usersByID(testOperator), inventory.ReplayStock)

	assert.Empty(t, report.Skipped)
	assert.Equal(t, ledger.Len(), rebuilt.Len())
	for _, p := range live.List() {
		got, err := replayReg.FindByCode(p.Code())
		require.NoError(t, err)
		assert.Equal(t, p.CurrentStock(), got.CurrentStock(), p.Code())
	}
	assert.Equal(t, 10, mouse.CurrentStock())
	assert.Equal(t, 3, pad.CurrentStock())
}

func TestRebuild_FilaSinIDRecibeUno(t *testing.T) {
	reg, _ := freshRegistry(t, "P001", 0)
	rows := []inventory.MovementRow{{Type: "INGRESO", Timestamp: t0, Quantity: 1, ProductCode: "P001", UserID: 7}}

	ledger, _ := inventory.RebuildFrom(rows, reg.Lookup, usersByID(testOperator), inventory.ReplayStock)

	require.Equal(t, 1, ledger.Len())
	assert.NotEmpty(t, ledger.History()[0].ID())
}

func TestParseRebuildMode(t *testing.T) {
	m, err := inventory.ParseRebuildMode("")
	require.NoError(t, err)
	assert.Equal(t, inventory.TrustStock, m)
	m, err = inventory.ParseRebuildMode("Replay")
	require.NoError(t, err)
	assert.Equal(t, inventory.ReplayStock, m)
	_, err = inventory.ParseRebuildMode("merge")
	assert.Error(t, err)
}
