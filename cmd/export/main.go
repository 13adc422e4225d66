// export carga el stock desde PostgreSQL y escribe productos.csv, movimientos.csv y stock.pdf en una carpeta.
//
// Uso:
//
//	export -out ./reportes [-replay] [-encoding latin1]
//
// Con -replay el stock se recalcula desde el log de movimientos en vez de confiar en productos.stock_actual;
// sirve para verificar que ambos coinciden.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/gametech-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/gametech-stock/pkg/config"
	"github.com/jhoicas/gametech-stock/pkg/logger"
)

func main() {
	out := flag.StringP("out", "o", ".", "carpeta destino")
	replay := flag.Bool("replay", false, "recalcular el stock desde el log de movimientos")
	encodingFlag := flag.String("encoding", "", "codificación de los CSV (utf-8|latin1); por defecto EXPORT_ENCODING")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(context.Background(), cfg, log, *out, *replay, *encodingFlag); err != nil {
		log.Fatal().Err(err).Msg("exportación fallida")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, out string, replay bool, encodingName string) error {
	if encodingName == "" {
		encodingName = cfg.Export.Encoding
	}
	encoding, err := export.ParseEncoding(encodingName)
	if err != nil {
		return err
	}
	mode := inventory.TrustStock
	if replay {
		mode = inventory.ReplayStock
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("crear carpeta %s: %w", out, err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	// solo lectura: sin TxRunner la sesión no escribe nada
	repos := appinv.Repositories{
		Products:   postgres.NewProductRepository(pool),
		Movements:  postgres.NewMovementRepository(pool),
		Users:      postgres.NewUserRepository(pool),
		Warehouses: postgres.NewWarehouseRepository(pool),
	}
	session, report, err := appinv.Load(ctx, repos, appinv.LoadOptions{
		Mode:               mode,
		DefaultWarehouseID: cfg.Stock.DefaultWarehouseID,
	}, appinv.WithLogger(log.Component("stock")))
	if err != nil {
		return err
	}
	snap := session.Snapshot()

	csvExp := export.NewCSVExporter(encoding)
	var products, movements bytes.Buffer
	if err := csvExp.WriteProducts(&products, snap.Products); err != nil {
		return err
	}
	if err := csvExp.WriteMovements(&movements, snap.Movements); err != nil {
		return err
	}
	pdf, err := infrapdf.NewStockReportGenerator(cfg.App.Name).GenerateStockReport(ctx, snap)
	if err != nil {
		return err
	}

	files := map[string][]byte{
		export.ProductsFile:    products.Bytes(),
		export.MovementsFile:   movements.Bytes(),
		export.StockReportFile: pdf,
	}
	for name, body := range files {
		path := filepath.Join(out, name)
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", path, err)
		}
		log.Info().Str("file", path).Int("bytes", len(body)).Msg("archivo exportado")
	}

	log.Info().
		Bool("replay", replay).
		Int("products", len(snap.Products)).
		Int("movements", len(snap.Movements)).
		Int("skipped", len(report.Skipped)).
		Msg("exportación completa")
	return nil
}
