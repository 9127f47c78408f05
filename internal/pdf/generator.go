package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/mbella/transvoyages/internal/stats"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders an aggregation result as a one-page statistics report.
// Built-in fonts cover the cp1252 range, which is enough for French labels.
func (g *Generator) Generate(result stats.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Rapport de statistiques"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(result.Summary.PeriodLabel), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Totaux"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	totals := []struct {
		label string
		value string
	}{
		{"Nombre de voyages", fmt.Sprintf("%d", result.Totals.TripCount)},
		{"Recette brute", stats.FormatAmount(result.Totals.TotalGrossRevenue) + " FCFA"},
		{"Recette nette", stats.FormatAmount(result.Totals.TotalNetRevenue) + " FCFA"},
		{"Passagers", fmt.Sprintf("%d", result.Totals.TotalPassengers)},
		{"Moyenne par voyage", stats.FormatAmount(result.Summary.AveragePerVoyage) + " FCFA"},
		{"Meilleur voyage", result.Summary.Best},
	}
	for _, row := range totals {
		pdf.CellFormat(70, 7, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(110, 7, tr(row.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Répartition de la recette brute"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, tr("Tranche"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(90, 7, tr("Recette brute (FCFA)"), "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, bucket := range result.Series {
		if bucket.Value == 0 {
			continue
		}
		pdf.CellFormat(90, 6, tr(bucket.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, tr(stats.FormatAmount(bucket.Value)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Voyages (%d)", len(result.Voyages))), "", 1, "L", false, 0, "")

	headers := []string{"Date", "Chauffeur", "Véhicule", "Places", "Recette brute", "Retenue"}
	widths := []float64{22, 48, 28, 18, 34, 30}

	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 6, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, v := range result.Voyages {
		pdf.CellFormat(widths[0], 6, v.Date.Format(stats.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(v.DriverName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(v.VehicleNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", v.SeatCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, tr(stats.FormatAmount(v.GrossRevenue)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, tr(stats.FormatAmount(v.Deduction)), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
