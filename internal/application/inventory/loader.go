package inventory

import (
	"context"

	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

// LoadOptions controla cómo se arma la sesión desde la base.
type LoadOptions struct {
	Mode               inventory.RebuildMode
	DefaultWarehouseID int
}

// Load lee depósitos, usuarios, productos y el log de movimientos y reconstruye el ledger.
// Las filas descartadas se registran como warning; no impiden arrancar.
func Load(ctx context.Context, repos Repositories, opts LoadOptions, sessOpts ...SessionOption) (*Session, inventory.RebuildReport, error) {
	warehouses := inventory.NewWarehouseRegistry(opts.DefaultWarehouseID)
	if repos.Warehouses != nil {
		if _, err := warehouses.Reload(ctx, repos.Warehouses.List); err != nil {
			return nil, inventory.RebuildReport{}, domain.NewPersistenceError("listar depósitos", err)
		}
	}

	var users []*entity.User
	if repos.Users != nil {
		list, err := repos.Users.List(ctx)
		if err != nil {
			return nil, inventory.RebuildReport{}, domain.NewPersistenceError("listar usuarios", err)
		}
		users = list
	}

	products := inventory.NewProductRegistry()
	if repos.Products != nil {
		list, err := repos.Products.List(ctx)
		if err != nil {
			return nil, inventory.RebuildReport{}, domain.NewPersistenceError("listar productos", err)
		}
		if err := products.Load(list...); err != nil {
			return nil, inventory.RebuildReport{}, err
		}
	}

	var rows []inventory.MovementRow
	if repos.Movements != nil {
		list, err := repos.Movements.List(ctx)
		if err != nil {
			return nil, inventory.RebuildReport{}, domain.NewPersistenceError("listar movimientos", err)
		}
		rows = list
	}

	byID := make(map[int]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ledger, report := inventory.RebuildFrom(rows, products.Lookup, func(id int) (*entity.User, bool) {
		u, ok := byID[id]
		return u, ok
	}, opts.Mode)

	s := NewSession(products, ledger, warehouses, users, repos, sessOpts...)
	for _, skipped := range report.Skipped {
		s.log.Warn().
			Err(skipped.Reason).
			Str("row_id", skipped.Row.ID).
			Str("type", skipped.Row.Type).
			Str("product_code", skipped.Row.ProductCode).
			Int("user_id", skipped.Row.UserID).
			Msg("movimiento descartado al reconstruir")
	}
	s.log.Info().
		Int("products", products.Len()).
		Int("movements", report.Loaded).
		Int("skipped", len(report.Skipped)).
		Int("warehouses", len(warehouses.List())).
		Msg("stock cargado")
	return s, report, nil
}
