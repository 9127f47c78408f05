package stats

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted calendar date format (JJ/MM/AAAA).
// time.Parse rejects impossible dates such as 31/02/2024.
const DateLayout = "02/01/2006"

// maxCustomSpan caps a custom range at one year.
const maxCustomSpan = 365 * 24 * time.Hour

type PeriodKind string

const (
	PeriodDay    PeriodKind = "day"
	PeriodWeek   PeriodKind = "week"
	PeriodMonth  PeriodKind = "month"
	PeriodCustom PeriodKind = "custom"
)

// ErrInvalidPeriod is matched by every ValidationError through errors.Is.
var ErrInvalidPeriod = errors.New("invalid period")

// Constraint codes carried by ValidationError.
const (
	CodeRequired      = "required"
	CodeFormat        = "format"
	CodeInvertedRange = "inverted_range"
	CodeRangeTooLong  = "range_too_long"
	CodeUnknownPeriod = "unknown_period"
)

// ValidationError identifies which field violated which constraint, so the
// client can surface a field-level message instead of a generic banner.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidPeriod }

// Period is a caller-selected reporting window. Start, End and Label are only
// meaningful for PeriodCustom.
type Period struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
	Label string
}

// ParseDate parses a strict JJ/MM/AAAA calendar date. Malformed or impossible
// dates are rejected, never coerced.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParsePeriod builds a Period from request parameters. start, end and label
// are ignored unless kind is "custom".
func ParsePeriod(kind, start, end, label string) (Period, error) {
	switch PeriodKind(kind) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period{Kind: PeriodKind(kind)}, nil
	case PeriodCustom:
		return CustomPeriod(start, end, label)
	default:
		return Period{}, &ValidationError{
			Field:   "period",
			Code:    CodeUnknownPeriod,
			Message: "période inconnue",
		}
	}
}

// CustomPeriod validates a custom range. If label is empty a display label is
// derived from the validated bounds ("1 janv 2025 - 30 juin 2025").
func CustomPeriod(startRaw, endRaw, label string) (Period, error) {
	if startRaw == "" {
		return Period{}, &ValidationError{
			Field:   "start_date",
			Code:    CodeRequired,
			Message: "la date de début est requise",
		}
	}
	if endRaw == "" {
		return Period{}, &ValidationError{
			Field:   "end_date",
			Code:    CodeRequired,
			Message: "la date de fin est requise",
		}
	}

	start, err := ParseDate(startRaw)
	if err != nil {
		return Period{}, &ValidationError{
			Field:   "start_date",
			Code:    CodeFormat,
			Message: "format invalide (JJ/MM/AAAA)",
		}
	}
	end, err := ParseDate(endRaw)
	if err != nil {
		return Period{}, &ValidationError{
			Field:   "end_date",
			Code:    CodeFormat,
			Message: "format invalide (JJ/MM/AAAA)",
		}
	}

	if end.Before(start) {
		return Period{}, &ValidationError{
			Field:   "date_range",
			Code:    CodeInvertedRange,
			Message: "la date de fin doit être après la date de début",
		}
	}
	if end.Sub(start) > maxCustomSpan {
		return Period{}, &ValidationError{
			Field:   "date_range",
			Code:    CodeRangeTooLong,
			Message: "la période ne peut dépasser 1 an",
		}
	}

	if label == "" {
		label = fmt.Sprintf("%s - %s", displayDate(start), displayDate(end))
	}
	return Period{Kind: PeriodCustom, Start: start, End: end, Label: label}, nil
}

// Window returns the inclusive [from, to] bounds of the period relative to
// now. For PeriodWeek the week starts on Monday regardless of locale.
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	switch p.Kind {
	case PeriodDay:
		from := dateOnly(now)
		return from, endOfDay(from)
	case PeriodWeek:
		monday := dateOnly(now).AddDate(0, 0, -mondayIndex(now.Weekday()))
		return monday, endOfDay(monday.AddDate(0, 0, 6))
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, endOfDay(first.AddDate(0, 1, -1))
	case PeriodCustom:
		return dateOnly(p.Start), endOfDay(p.End)
	}
	return time.Time{}, time.Time{}
}

// mondayIndex maps a weekday to its 0-based offset from Monday.
func mondayIndex(d time.Weekday) int { return (int(d) + 6) % 7 }

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
