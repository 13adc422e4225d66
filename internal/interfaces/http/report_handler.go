package http

import (
	"bytes"
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/export"
)

// StockReportGenerator genera el PDF de stock a partir de un snapshot.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, snap dto.SnapshotResponse) ([]byte, error)
}

// ReportHandler descargas CSV/PDF (protegido).
type ReportHandler struct {
	session *appinv.Session
	csv     *export.CSVExporter
	pdf     StockReportGenerator
}

// NewReportHandler construye el handler. pdf puede ser nil (la ruta responde 501).
func NewReportHandler(session *appinv.Session, csv *export.CSVExporter, pdf StockReportGenerator) *ReportHandler {
	if csv == nil {
		csv = export.NewCSVExporter(export.UTF8)
	}
	return &ReportHandler{session: session, csv: csv, pdf: pdf}
}

// ProductsCSV godoc
// @Summary      Exportar productos en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/products.csv [get]
func (h *ReportHandler) ProductsCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.csv.WriteProducts(&buf, h.session.Products()); err != nil {
		return respondError(c, err)
	}
	return h.attachment(c, export.ProductsFile, h.csv.ContentType(), buf.Bytes())
}

// MovementsCSV godoc
// @Summary      Exportar movimientos en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/movements.csv [get]
func (h *ReportHandler) MovementsCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.csv.WriteMovements(&buf, h.session.History()); err != nil {
		return respondError(c, err)
	}
	return h.attachment(c, export.MovementsFile, h.csv.ContentType(), buf.Bytes())
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "generador PDF no configurado"})
	}
	out, err := h.pdf.GenerateStockReport(c.UserContext(), h.session.Snapshot())
	if err != nil {
		return respondError(c, err)
	}
	return h.attachment(c, export.StockReportFile, "application/pdf", out)
}

func (h *ReportHandler) attachment(c *fiber.Ctx, filename, contentType string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
