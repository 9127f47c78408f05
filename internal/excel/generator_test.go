package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mbella/transvoyages/internal/model"
)

func TestGenerate(t *testing.T) {
	voyages := []model.Voyage{
		{
			ID:            uuid.New(),
			DriverName:    "Jean Mbarga",
			VehicleNumber: "LT-234-AB",
			City:          "Douala",
			GrossRevenue:  150000,
			Deduction:     15000,
			SeatCount:     55,
			Date:          time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            uuid.New(),
			DriverName:    "Paul Essomba",
			VehicleNumber: "CE-101-XY",
			City:          "Yaoundé",
			GrossRevenue:  90000,
			Deduction:     0,
			SeatCount:     30,
			Date:          time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	content, err := NewGenerator().Generate(voyages)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer file.Close()

	if got, _ := file.GetCellValue("Voyages", "B2"); got != "Jean Mbarga" {
		t.Errorf("B2 = %q, want Jean Mbarga", got)
	}
	if got, _ := file.GetCellValue("Voyages", "A3"); got != "13/06/2024" {
		t.Errorf("A3 = %q, want 13/06/2024", got)
	}
	if got, _ := file.GetCellValue("Voyages", "G5"); got != "240000" {
		t.Errorf("total gross G5 = %q, want 240000", got)
	}
}

func TestGenerateEmpty(t *testing.T) {
	content, err := NewGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer file.Close()

	if got, _ := file.GetCellValue("Voyages", "A1"); got != "Date" {
		t.Errorf("header A1 = %q, want Date", got)
	}
	if got, _ := file.GetCellValue("Voyages", "A3"); got != "Total" {
		t.Errorf("A3 = %q, want Total", got)
	}
}
