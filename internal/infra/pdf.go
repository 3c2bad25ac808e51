package infra

// pdf.go — Consumption report generation using go-pdf/fpdf.
// Produces an A4 summary with the global cost, a per-galpón table and a
// per-alimento table. The output file is saved to
// storagePath/reporte_consumos_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateReporteConsumosPDF renders the consumption statistics as a PDF.
// periodo is the human-readable date range shown under the title.
// Returns the absolute path to the generated file.
func GenerateReporteConsumosPDF(stats *dto.EstadisticasConsumoResponse, periodo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_consumos_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte de Consumo de Alimentos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, periodo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Resumen ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW/2, 7, fmt.Sprintf("Registros: %d", stats.TotalRegistros), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 7, "Costo total: S/ "+stats.CostoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Por galpón ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Consumo por galpón", "", 1, "L", false, 0, "")

	col1 := contentW * 0.50
	col2 := contentW * 0.20
	col3 := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Galpón", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Registros", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Costo", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, g := range stats.PorGalpon {
		pdf.CellFormat(col1, 6, g.Galpon, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", g.TotalRegistros), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "S/ "+g.CostoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Por alimento ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Consumo por alimento", "", 1, "L", false, 0, "")

	a1 := contentW * 0.40
	a2 := contentW * 0.20
	a3 := contentW * 0.15
	a4 := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(a1, 6, "Alimento", "B", 0, "L", false, 0, "")
	pdf.CellFormat(a2, 6, "Cantidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(a3, 6, "Registros", "B", 0, "C", false, 0, "")
	pdf.CellFormat(a4, 6, "Costo", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range stats.PorAlimento {
		nombre := a.Alimento
		if len(nombre) > 34 {
			nombre = nombre[:33] + "…"
		}
		pdf.CellFormat(a1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(a2, 6, a.CantidadTotal.String()+" "+a.Unidad, "", 0, "C", false, 0, "")
		pdf.CellFormat(a3, 6, fmt.Sprintf("%d", a.TotalRegistros), "", 0, "C", false, 0, "")
		pdf.CellFormat(a4, 6, "S/ "+a.CostoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Generado el "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
