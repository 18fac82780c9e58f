package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Period is the time window over which spending analytics are aggregated.
type Period string

const (
	// PeriodDay aggregates over the current day.
	PeriodDay Period = "day"
	// PeriodWeek aggregates over the current week.
	PeriodWeek Period = "week"
	// PeriodMonth aggregates over the current month.
	PeriodMonth Period = "month"
)

// ParsePeriod converts user input to a Period, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (valid: day, week, month)", s)
	}
}

// Days returns the number of days the period spans, used for derived
// per-day values. Months use 30 as the backend does.
func (p Period) Days() int64 {
	switch p {
	case PeriodDay:
		return 1
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	default:
		return 1
	}
}

// CategorySpend is one slice of the category breakdown.
type CategorySpend struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// PeriodPoint is one point of the spending time series.
type PeriodPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// AnalyticsSnapshot is the period-scoped spending summary returned by the
// backend. Snapshots are derived values: they are recomputed per period
// selection and always replaced wholesale, never merged field by field.
type AnalyticsSnapshot struct {
	Period           Period          `json:"period"`
	TopCategory      string          `json:"topCategory"`
	Categories       []CategorySpend `json:"categories"`
	PeriodData       []PeriodPoint   `json:"periodData"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	TransactionCount int64           `json:"transactionCount"`
}

// HasData reports whether the snapshot contains anything to show. Empty
// category and period arrays mean "no data yet", not an error.
func (s *AnalyticsSnapshot) HasData() bool {
	return s != nil && (len(s.Categories) > 0 || len(s.PeriodData) > 0)
}

// AveragePerDay derives the per-day spend from the snapshot total. Computed
// locally so it can never disagree with the snapshot it came from.
func (s *AnalyticsSnapshot) AveragePerDay() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.TotalSpent.Div(decimal.NewFromInt(s.Period.Days())).Round(2)
}
