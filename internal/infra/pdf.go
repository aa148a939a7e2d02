package infra

// pdf.go: Constancia de traslado using go-pdf/fpdf.
// One A5 page per traslado with:
//   - Origin and destination cajas
//   - Sending and receiving employees
//   - Sent amount, received amount and diferencia
//   - Current estado and comments
//
// The output file is saved to storagePath/constancia_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"catu/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateConstanciaPDF renders the receipt certificate of a traslado.
// storagePath is created if needed. Returns the path to the generated file.
func GenerateConstanciaPDF(v dto.TrasladoVista, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("constancia_%s.pdf", v.ID))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20
	labelW := contentW * 0.4
	valueW := contentW - labelW

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr("Constancia de Traslado"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, v.ID.String(), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Route ────────────────────────────────────────────────────────────────
	row("Estado:", v.Estado.String())
	row("Caja origen:", nombreCaja(v.CajaOrigen))
	row("Caja destino:", nombreCaja(v.CajaDestino))
	row("Envía:", nombreEmpleado(v.EmpleadoEnvia))
	row("Iniciado:", v.FechaHora.Format("02/01/2006 15:04"))
	if v.DespachadoEn != nil {
		row("Despachado:", v.DespachadoEn.Format("02/01/2006 15:04"))
	}
	if v.Arqueo != nil {
		row("Arqueo:", v.Arqueo.CreatedAt.Format("02/01/2006 15:04"))
	}
	pdf.Ln(2)

	// ── Amounts ──────────────────────────────────────────────────────────────
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)
	row("Monto enviado:", "$"+v.Monto.StringFixed(2))
	if r := v.Recepcion; r != nil {
		row("Recibe:", nombreEmpleado(r.EmpleadoRecibe))
		row("Recibido:", r.FechaHora.Format("02/01/2006 15:04"))
		row("Monto recibido:", "$"+r.MontoRecibido.StringFixed(2))
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelW, 8, tr("Diferencia:"), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 8, "$"+r.Diferencia.StringFixed(2), "", 1, "L", false, 0, "")
		if r.Comentario != nil && *r.Comentario != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(contentW, 5, tr("Comentario: "+*r.Comentario), "", "L", false)
		}
	}
	if v.Observaciones != nil && *v.Observaciones != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr("Observaciones: "+*v.Observaciones), "", "L", false)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, tr("Generado "+time.Now().Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func nombreCaja(c *dto.CajaRef) string {
	if c == nil {
		return "-"
	}
	return c.Nombre
}

func nombreEmpleado(e *dto.EmpleadoRef) string {
	if e == nil {
		return "-"
	}
	return e.NombreCompleto
}
