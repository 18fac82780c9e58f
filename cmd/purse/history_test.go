package main

import (
	"testing"
	"time"

	"github.com/pursecli/purse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHistoryFilterEmpty(t *testing.T) {
	filter, err := buildHistoryFilter("", "", "", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, filter.Type)
	assert.Nil(t, filter.Status)
	assert.Nil(t, filter.Category)
	assert.Nil(t, filter.DateFrom)
	assert.Nil(t, filter.DateTo)
	assert.Empty(t, filter.Search)
}

func TestBuildHistoryFilterFull(t *testing.T) {
	filter, err := buildHistoryFilter("send_money", "success", "Food", "coffee", "2026-08-01", "2026-08-29")
	require.NoError(t, err)

	require.NotNil(t, filter.Type)
	assert.Equal(t, model.TypeSendMoney, *filter.Type)
	require.NotNil(t, filter.Status)
	assert.Equal(t, model.StatusSuccess, *filter.Status)
	require.NotNil(t, filter.Category)
	assert.Equal(t, model.CategoryFood, *filter.Category)
	assert.Equal(t, "coffee", filter.Search)
	require.NotNil(t, filter.DateFrom)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *filter.DateFrom)
	require.NotNil(t, filter.DateTo)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), *filter.DateTo)
}

func TestBuildHistoryFilterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		txType   string
		txStatus string
		category string
		from     string
		to       string
	}{
		{name: "unknown type", txType: "WITHDRAW"},
		{name: "unknown status", txStatus: "MAYBE"},
		{name: "unknown category", category: "gambling"},
		{name: "bad from date", from: "08/01/2026"},
		{name: "bad to date", to: "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildHistoryFilter(tt.txType, tt.txStatus, tt.category, "", tt.from, tt.to)
			assert.Error(t, err)
		})
	}
}
