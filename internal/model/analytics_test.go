package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Period
		wantErr bool
	}{
		{name: "day", input: "day", want: PeriodDay},
		{name: "week uppercase", input: "Week", want: PeriodWeek},
		{name: "month", input: "month", want: PeriodMonth},
		{name: "unknown", input: "year", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyticsSnapshotHasData(t *testing.T) {
	var nilSnap *AnalyticsSnapshot
	assert.False(t, nilSnap.HasData())

	empty := &AnalyticsSnapshot{Period: PeriodWeek}
	assert.False(t, empty.HasData(), "empty arrays are the no-data terminal condition")

	withCategories := &AnalyticsSnapshot{
		Period:     PeriodWeek,
		Categories: []CategorySpend{{Category: CategoryFood, Amount: decimal.NewFromInt(50)}},
	}
	assert.True(t, withCategories.HasData())

	withSeries := &AnalyticsSnapshot{
		Period:     PeriodDay,
		PeriodData: []PeriodPoint{{Date: "2026-08-29", Amount: decimal.NewFromInt(10)}},
	}
	assert.True(t, withSeries.HasData())
}

func TestAnalyticsSnapshotAveragePerDay(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		total  int64
		want   string
	}{
		{name: "day divides by one", period: PeriodDay, total: 42, want: "42"},
		{name: "week divides by seven", period: PeriodWeek, total: 700, want: "100"},
		{name: "month divides by thirty", period: PeriodMonth, total: 900, want: "30"},
		{name: "rounds to two places", period: PeriodWeek, total: 100, want: "14.29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &AnalyticsSnapshot{
				Period:     tt.period,
				TotalSpent: decimal.NewFromInt(tt.total),
			}
			want := decimal.RequireFromString(tt.want)
			assert.True(t, snap.AveragePerDay().Equal(want),
				"got %s want %s", snap.AveragePerDay(), want)
		})
	}
}
