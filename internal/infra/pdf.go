package infra

// pdf.go: preview report rendered with go-pdf/fpdf.
// A4 portrait page with:
//   - Client header (name, CUIT, condición fiscal)
//   - Journal entries table (Fecha, Cuenta, Debe, Haber, Detalle)
//   - Column totals
//   - Balance check flag

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/selimb1/conta100/internal/model"
)

// PreviewPDFName is the download filename of a client's preview.
func PreviewPDFName(clienteID int) string {
	return "previsualizacion_cliente_" + strconv.Itoa(clienteID) + ".pdf"
}

// WritePreviewPDF renders the entries of res for cliente and writes the PDF to w.
func WritePreviewPDF(w io.Writer, cliente model.Cliente, res model.Resultado) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("") // UTF-8 → cp1252 for core fonts
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr("Asientos (previsualización)"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("%s - CUIT %s - %s", cliente.Nombre, cliente.CUIT, cliente.CondicionFiscal)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Resultado #%d", res.ID), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Table ────────────────────────────────────────────────────────────────
	colFecha := contentW * 0.14
	colCuenta := contentW * 0.26
	colDebe := contentW * 0.15
	colHaber := contentW * 0.15
	colDetalle := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(238, 238, 238)
	pdf.CellFormat(colFecha, 6, "Fecha", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colCuenta, 6, "Cuenta", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colDebe, 6, "Debe", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colHaber, 6, "Haber", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colDetalle, 6, "Detalle", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	paquete := res.ContenidoJSON
	for _, a := range paquete.Asientos {
		pdf.CellFormat(colFecha, 5, tr(a.Fecha), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colCuenta, 5, tr(truncate(a.Cuenta, 32)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colDebe, 5, a.Debe.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colHaber, 5, a.Haber.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colDetalle, 5, tr(truncate(a.Detalle, 38)), "1", 1, "L", false, 0, "")
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colFecha+colCuenta, 6, "Totales", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colDebe, 6, paquete.TotalDebe().StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colHaber, 6, paquete.TotalHaber().StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colDetalle, 6, "", "1", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Cuadre de sumas: "+strconv.FormatBool(paquete.Validaciones.CuadreSumas), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write preview: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
