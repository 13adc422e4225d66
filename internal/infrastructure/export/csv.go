// Package export escribe los listados de productos y movimientos en CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
)

// Nombres de archivo de las exportaciones.
const (
	ProductsFile    = "productos.csv"
	MovementsFile   = "movimientos.csv"
	StockReportFile = "stock.pdf"
)

var (
	productHeader  = []string{"Codigo", "Nombre", "Categoria", "Stock Minimo", "Stock Actual", "Stock Crítico"}
	movementHeader = []string{"Fecha", "Tipo", "Cantidad", "Justificacion", "Codigo Producto", "Nombre Producto", "Usuario"}
)

// Encoding codificación de salida de los CSV.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin1"
)

// ParseEncoding acepta utf-8 (o vacío) y latin1 / iso-8859-1.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1":
		return Latin1, nil
	}
	return "", fmt.Errorf("export: codificación no soportada %q", s)
}

// CSVExporter escribe los CSV en la codificación configurada.
type CSVExporter struct {
	enc Encoding
}

func NewCSVExporter(enc Encoding) *CSVExporter {
	if enc == "" {
		enc = UTF8
	}
	return &CSVExporter{enc: enc}
}

// ContentType valor del header Content-Type para las descargas.
func (e *CSVExporter) ContentType() string {
	if e.enc == Latin1 {
		return "text/csv; charset=iso-8859-1"
	}
	return "text/csv; charset=utf-8"
}

// WriteProducts una fila por producto; "Stock Crítico" es Sí/No.
func (e *CSVExporter) WriteProducts(w io.Writer, products []dto.ProductResponse) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		critical := "No"
		if p.IsCritical {
			critical = "Sí"
		}
		rows = append(rows, []string{
			p.Code,
			p.Name,
			p.Category,
			strconv.Itoa(p.MinimumStock),
			strconv.Itoa(p.CurrentStock),
			critical,
		})
	}
	return e.write(w, productHeader, rows)
}

// WriteMovements una fila por movimiento en orden de registro. Cantidad va con signo.
func (e *CSVExporter) WriteMovements(w io.Writer, movements []dto.MovementResponse) error {
	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []string{
			m.Timestamp.Format(time.RFC3339),
			m.Type,
			strconv.Itoa(m.Delta),
			m.Justification,
			m.ProductCode,
			m.ProductName,
			m.UserName,
		})
	}
	return e.write(w, movementHeader, rows)
}

func (e *CSVExporter) write(w io.Writer, header []string, rows [][]string) error {
	if e.enc == Latin1 {
		// los caracteres fuera de latin1 se reemplazan en vez de abortar la exportación
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))
		if err := writeCSV(tw, header, rows); err != nil {
			return err
		}
		return tw.Close()
	}
	return writeCSV(w, header, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: escribir encabezado: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export: escribir filas: %w", err)
	}
	return nil
}
