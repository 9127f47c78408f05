package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/stats"
)

func TestGenerate(t *testing.T) {
	voyages := []model.Voyage{
		{
			ID:            uuid.New(),
			DriverName:    "Jean Mbarga",
			VehicleNumber: "LT-234-AB",
			GrossRevenue:  150000,
			Deduction:     15000,
			SeatCount:     55,
			Date:          time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	result := stats.Result{
		Voyages: voyages,
		Totals:  stats.BuildTotals(voyages),
		Series:  stats.BuildSeries(voyages, stats.Period{Kind: stats.PeriodWeek}),
		Summary: stats.Summary{
			PeriodLabel:      "Semaine du 10/06/2024",
			Best:             "12/06/2024 (150 000 FCFA)",
			AveragePerVoyage: 150000,
		},
	}

	content, err := NewGenerator().Generate(result)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestGenerateEmptyResult(t *testing.T) {
	result := stats.Result{
		Series:  stats.BuildSeries(nil, stats.Period{Kind: stats.PeriodDay}),
		Summary: stats.Summary{PeriodLabel: "Aujourd'hui, 12/06/2024", Best: "Aucune donnée"},
	}
	content, err := NewGenerator().Generate(result)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(content) == 0 {
		t.Error("empty output")
	}
}
