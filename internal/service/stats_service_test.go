package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/stats"
)

type stubPDF struct{ called bool }

func (s *stubPDF) Generate(result stats.Result) ([]byte, error) {
	s.called = true
	return []byte("%PDF-1.4"), nil
}

type stubExcel struct{ rows int }

func (s *stubExcel) Generate(voyages []model.Voyage) ([]byte, error) {
	s.rows = len(voyages)
	return []byte("PK"), nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC)
}

func statsFixture(agent uuid.UUID) *stubVoyageRepo {
	day := func(d int) time.Time { return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC) }
	return &stubVoyageRepo{voyages: []model.Voyage{
		{ID: uuid.New(), AgentID: agent, Date: day(12), GrossRevenue: 50000, Deduction: 5000, SeatCount: 40},
		{ID: uuid.New(), AgentID: agent, Date: day(12), GrossRevenue: 30000, Deduction: 0, SeatCount: 70},
		{ID: uuid.New(), AgentID: uuid.New(), Date: day(12), GrossRevenue: 90000, Deduction: 0, SeatCount: 10},
		{ID: uuid.New(), AgentID: agent, Date: day(3), GrossRevenue: 20000, Deduction: 1000, SeatCount: 30},
	}}
}

func TestStatsAggregateDay(t *testing.T) {
	agent := accountant()
	svc := NewStatsService(statsFixture(agent.UserID), &stubPDF{}, &stubExcel{}, fixedNow)

	result, err := svc.Aggregate(context.Background(), agent, AggregateInput{Period: "day"})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if result.Totals.TripCount != 2 {
		t.Errorf("trip count = %d, want 2", result.Totals.TripCount)
	}
	if result.Totals.TotalGrossRevenue != 80000 {
		t.Errorf("gross = %v, want 80000", result.Totals.TotalGrossRevenue)
	}
	if result.Totals.TotalNetRevenue != 75000 {
		t.Errorf("net = %v, want 75000", result.Totals.TotalNetRevenue)
	}
	if len(result.Series) != 24 {
		t.Errorf("series length = %d, want 24", len(result.Series))
	}
	if result.Summary.PeriodLabel != "Aujourd'hui, 12/06/2024" {
		t.Errorf("period label = %q", result.Summary.PeriodLabel)
	}
}

func TestStatsAggregateAdminSeesAll(t *testing.T) {
	svc := NewStatsService(statsFixture(uuid.New()), &stubPDF{}, &stubExcel{}, fixedNow)

	result, err := svc.Aggregate(context.Background(), admin(), AggregateInput{Period: "month"})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if result.Totals.TripCount != 4 {
		t.Errorf("trip count = %d, want 4", result.Totals.TripCount)
	}
}

func TestStatsAggregateInvalidPeriod(t *testing.T) {
	svc := NewStatsService(&stubVoyageRepo{}, &stubPDF{}, &stubExcel{}, fixedNow)

	tests := []AggregateInput{
		{Period: "year"},
		{Period: "custom"},
		{Period: "custom", StartDate: "01/06/2024", EndDate: "2024-06-30"},
		{Period: "custom", StartDate: "30/06/2024", EndDate: "01/06/2024"},
	}
	for _, input := range tests {
		if _, err := svc.Aggregate(context.Background(), admin(), input); !errors.Is(err, stats.ErrInvalidPeriod) {
			t.Errorf("input %+v: err = %v, want ErrInvalidPeriod", input, err)
		}
	}
}

func TestStatsExportPDF(t *testing.T) {
	pdf := &stubPDF{}
	svc := NewStatsService(statsFixture(uuid.New()), pdf, &stubExcel{}, fixedNow)

	export, err := svc.ExportPDF(context.Background(), admin(), AggregateInput{Period: "week"})
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if !pdf.called {
		t.Error("pdf generator not invoked")
	}
	if export.FileName != "statistiques-week-20240612.pdf" {
		t.Errorf("file name = %q", export.FileName)
	}
	if len(export.Content) == 0 {
		t.Error("empty export content")
	}
}

func TestStatsExportExcelScoped(t *testing.T) {
	agent := accountant()
	excel := &stubExcel{}
	svc := NewStatsService(statsFixture(agent.UserID), &stubPDF{}, excel, fixedNow)

	export, err := svc.ExportExcel(context.Background(), agent)
	if err != nil {
		t.Fatalf("ExportExcel: %v", err)
	}
	if excel.rows != 3 {
		t.Errorf("exported %d rows, want caller's 3", excel.rows)
	}
	if export.FileName != "voyages-20240612.xlsx" {
		t.Errorf("file name = %q", export.FileName)
	}
}

func TestStatsDashboard(t *testing.T) {
	agent := accountant()
	svc := NewStatsService(statsFixture(agent.UserID), &stubPDF{}, &stubExcel{}, fixedNow)

	dash, err := svc.Dashboard(context.Background(), agent)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Today.TripCount != 2 {
		t.Errorf("today trip count = %d, want 2", dash.Today.TripCount)
	}
	if dash.Today.TotalPassengers != 110 {
		t.Errorf("today passengers = %d, want 110", dash.Today.TotalPassengers)
	}
	if len(dash.Recent) != 3 {
		t.Errorf("recent = %d voyages, want 3", len(dash.Recent))
	}
}
