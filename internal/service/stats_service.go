package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/stats"
)

type StatisticsPDF interface {
	Generate(result stats.Result) ([]byte, error)
}

type VoyagesExcel interface {
	Generate(voyages []model.Voyage) ([]byte, error)
}

// StatsService loads a fresh snapshot on every call and hands it to the pure
// aggregation engine. The clock is injected so results are deterministic in
// tests.
type StatsService struct {
	voyages VoyageRepo
	pdf     StatisticsPDF
	excel   VoyagesExcel
	now     func() time.Time
}

func NewStatsService(voyages VoyageRepo, pdf StatisticsPDF, excel VoyagesExcel, now func() time.Time) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{voyages: voyages, pdf: pdf, excel: excel, now: now}
}

// AggregateInput mirrors the statistics screen: a period kind plus, for
// custom ranges, the raw JJ/MM/AAAA bounds and an optional display label.
type AggregateInput struct {
	Period    string
	StartDate string
	EndDate   string
	Label     string
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *StatsService) Aggregate(ctx context.Context, caller model.Principal, input AggregateInput) (*stats.Result, error) {
	period, err := stats.ParsePeriod(input.Period, input.StartDate, input.EndDate, input.Label)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}

	result := stats.Aggregate(snapshot, caller, period, s.now())
	return &result, nil
}

func (s *StatsService) ExportPDF(ctx context.Context, caller model.Principal, input AggregateInput) (*ExportResult, error) {
	result, err := s.Aggregate(ctx, caller, input)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(*result)
	if err != nil {
		return nil, err
	}
	fileName := fmt.Sprintf("statistiques-%s-%s.pdf", input.Period, s.now().Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func (s *StatsService) ExportExcel(ctx context.Context, caller model.Principal) (*ExportResult, error) {
	snapshot, err := s.snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(snapshot)
	if err != nil {
		return nil, err
	}
	fileName := fmt.Sprintf("voyages-%s.xlsx", s.now().Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

type DashboardResult struct {
	Today  stats.Totals   `json:"today"`
	Recent []model.Voyage `json:"recent"`
}

// Dashboard returns today's totals plus the most recent voyages the caller
// may see.
func (s *StatsService) Dashboard(ctx context.Context, caller model.Principal) (*DashboardResult, error) {
	snapshot, err := s.snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}

	today := stats.Aggregate(snapshot, caller, stats.Period{Kind: stats.PeriodDay}, s.now())

	recent := snapshot
	if len(recent) > 10 {
		recent = recent[:10]
	}
	return &DashboardResult{Today: today.Totals, Recent: recent}, nil
}

// snapshot scopes the query to the caller; the engine re-applies visibility
// as a second line of defense.
func (s *StatsService) snapshot(ctx context.Context, caller model.Principal) ([]model.Voyage, error) {
	if caller.IsAdmin() {
		return s.voyages.ListAll(ctx)
	}
	return s.voyages.ListByAgent(ctx, caller.UserID)
}
