package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/stats"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the voyage snapshot to a single-sheet workbook, one row per
// voyage plus a totals row.
func (g *Generator) Generate(voyages []model.Voyage) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Voyages"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Date", "Chauffeur", "Véhicule", "Bordereau", "Ville",
		"Places", "Recette brute (FCFA)", "Retenue (FCFA)", "Recette nette (FCFA)",
	}
	for i, header := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		set(col+"1", header)
	}

	totals := stats.BuildTotals(voyages)
	for i, v := range voyages {
		row := i + 2
		set(fmt.Sprintf("A%d", row), v.Date.Format(stats.DateLayout))
		set(fmt.Sprintf("B%d", row), v.DriverName)
		set(fmt.Sprintf("C%d", row), v.VehicleNumber)
		set(fmt.Sprintf("D%d", row), v.BordereauNumber)
		set(fmt.Sprintf("E%d", row), v.City)
		set(fmt.Sprintf("F%d", row), v.SeatCount)
		set(fmt.Sprintf("G%d", row), v.GrossRevenue)
		set(fmt.Sprintf("H%d", row), v.Deduction)
		set(fmt.Sprintf("I%d", row), v.NetRevenue())
	}

	totalRow := len(voyages) + 3
	set(fmt.Sprintf("A%d", totalRow), "Total")
	set(fmt.Sprintf("F%d", totalRow), totals.TotalPassengers)
	set(fmt.Sprintf("G%d", totalRow), totals.TotalGrossRevenue)
	set(fmt.Sprintf("H%d", totalRow), totals.TotalGrossRevenue-totals.TotalNetRevenue)
	set(fmt.Sprintf("I%d", totalRow), totals.TotalNetRevenue)

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "E", 16)
	_ = file.SetColWidth(sheet, "F", "I", 20)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
