// Package stats is the trip aggregation engine: pure, synchronous computation
// over an in-memory snapshot of voyages. It performs no I/O, keeps no state
// and derives everything from (records, caller, period, now) on each call.
package stats

import (
	"fmt"
	"time"

	"github.com/mbella/transvoyages/internal/model"
)

type Totals struct {
	TripCount         int     `json:"trip_count"`
	TotalGrossRevenue float64 `json:"total_gross_revenue"`
	TotalNetRevenue   float64 `json:"total_net_revenue"`
	TotalPassengers   int     `json:"total_passengers"`
}

// Bucket is one labeled slot of a chart series. Index is stable (hour of day,
// Monday=0 weekday, week of month, month offset); Label is presentation.
type Bucket struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Summary struct {
	PeriodLabel      string  `json:"period_label"`
	Best             string  `json:"best"`
	AveragePerVoyage float64 `json:"average_per_voyage"`
}

type Result struct {
	Voyages []model.Voyage `json:"voyages"`
	Totals  Totals         `json:"totals"`
	Series  []Bucket       `json:"series"`
	Summary Summary        `json:"summary"`
}

// Aggregate runs the full pipeline: visibility filter, period filter, series,
// totals, summary. The period must already be validated (ParsePeriod).
func Aggregate(voyages []model.Voyage, caller model.Principal, period Period, now time.Time) Result {
	visible := VisibleTo(voyages, caller)
	filtered := InPeriod(visible, period, now)
	return Result{
		Voyages: filtered,
		Totals:  BuildTotals(filtered),
		Series:  BuildSeries(filtered, period),
		Summary: BuildSummary(filtered, period, now),
	}
}

// VisibleTo restricts the snapshot to what the caller may see: admins get the
// input unchanged, everyone else only voyages they recorded. The input is
// never mutated and relative order is preserved. This is a second line of
// defense; the repository query is expected to scope already.
func VisibleTo(voyages []model.Voyage, caller model.Principal) []model.Voyage {
	if caller.IsAdmin() {
		return voyages
	}
	out := make([]model.Voyage, 0, len(voyages))
	for _, v := range voyages {
		if v.AgentID == caller.UserID {
			out = append(out, v)
		}
	}
	return out
}

// InPeriod keeps voyages whose calendar date falls inside the period window
// at now. Boundaries are inclusive on both ends.
func InPeriod(voyages []model.Voyage, period Period, now time.Time) []model.Voyage {
	from, to := period.Window(now)
	out := make([]model.Voyage, 0, len(voyages))
	for _, v := range voyages {
		d := dateOnly(v.Date)
		if !d.Before(from) && !d.After(to) {
			out = append(out, v)
		}
	}
	return out
}

func BuildTotals(voyages []model.Voyage) Totals {
	t := Totals{TripCount: len(voyages)}
	for _, v := range voyages {
		t.TotalGrossRevenue += v.GrossRevenue
		t.TotalNetRevenue += v.NetRevenue()
		t.TotalPassengers += v.SeatCount
	}
	return t
}

// BuildSeries buckets gross revenue according to the period kind. The series
// length is fixed by the kind (24, 7, 4) except for custom ranges, whose
// length equals the inclusive month span. Empty buckets stay at 0.
func BuildSeries(voyages []model.Voyage, period Period) []Bucket {
	switch period.Kind {
	case PeriodDay:
		return hourlySeries(voyages)
	case PeriodWeek:
		return weekdaySeries(voyages)
	case PeriodMonth:
		return weekOfMonthSeries(voyages)
	case PeriodCustom:
		return monthlySeries(voyages, period.Start, period.End)
	}
	return nil
}

// hourlySeries buckets by the hour of the record's creation timestamp. The
// trip date itself carries no time of day; records without a creation
// timestamp land in bucket 0.
func hourlySeries(voyages []model.Voyage) []Bucket {
	series := make([]Bucket, 24)
	for i := range series {
		series[i] = Bucket{Index: i, Label: fmt.Sprintf("%dh", i)}
	}
	for _, v := range voyages {
		hour := 0
		if !v.CreatedAt.IsZero() {
			hour = v.CreatedAt.Hour()
		}
		series[hour].Value += v.GrossRevenue
	}
	return series
}

func weekdaySeries(voyages []model.Voyage) []Bucket {
	series := make([]Bucket, 7)
	for i := range series {
		series[i] = Bucket{Index: i, Label: weekdayShort[i]}
	}
	for _, v := range voyages {
		series[mondayIndex(v.Date.Weekday())].Value += v.GrossRevenue
	}
	return series
}

// weekOfMonthSeries is a fixed 4-bucket approximation, not a true ISO week
// split: bucket = min(dayOfMonth/7, 3). Days 29-31 fold into the last bucket.
func weekOfMonthSeries(voyages []model.Voyage) []Bucket {
	series := make([]Bucket, 4)
	for i := range series {
		series[i] = Bucket{Index: i, Label: fmt.Sprintf("Sem %d", i+1)}
	}
	for _, v := range voyages {
		idx := v.Date.Day() / 7
		if idx > 3 {
			idx = 3
		}
		series[idx].Value += v.GrossRevenue
	}
	return series
}

// monthlySeries emits one bucket per calendar month from start's month
// through end's month inclusive.
func monthlySeries(voyages []model.Voyage, start, end time.Time) []Bucket {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())

	var series []Bucket
	for cur, i := first, 0; !cur.After(last); cur, i = cur.AddDate(0, 1, 0), i+1 {
		series = append(series, Bucket{Index: i, Label: monthShort[cur.Month()-1]})
	}
	for _, v := range voyages {
		m := time.Date(v.Date.Year(), v.Date.Month(), 1, 0, 0, 0, 0, v.Date.Location())
		if m.Before(first) || m.After(last) {
			continue
		}
		idx := int(m.Month()) - int(first.Month()) + 12*(m.Year()-first.Year())
		series[idx].Value += v.GrossRevenue
	}
	return series
}

// BuildSummary derives the period label, the best voyage description and the
// average gross per voyage. Empty input yields average 0 and "Aucune donnée",
// never a division by zero.
func BuildSummary(voyages []model.Voyage, period Period, now time.Time) Summary {
	s := Summary{PeriodLabel: periodLabel(period, now), Best: "Aucune donnée"}
	if len(voyages) == 0 {
		return s
	}

	var total float64
	best := voyages[0]
	for _, v := range voyages {
		total += v.GrossRevenue
		if v.GrossRevenue > best.GrossRevenue {
			best = v
		}
	}
	s.AveragePerVoyage = total / float64(len(voyages))
	s.Best = fmt.Sprintf("%s (%s FCFA)", best.Date.Format(DateLayout), FormatAmount(best.GrossRevenue))
	return s
}

func periodLabel(period Period, now time.Time) string {
	switch period.Kind {
	case PeriodDay:
		return fmt.Sprintf("Aujourd'hui, %s", now.Format(DateLayout))
	case PeriodWeek:
		monday, _ := period.Window(now)
		return fmt.Sprintf("Semaine du %s", monday.Format(DateLayout))
	case PeriodMonth:
		return fmt.Sprintf("%s %d", monthLong[now.Month()-1], now.Year())
	case PeriodCustom:
		return period.Label
	}
	return ""
}
