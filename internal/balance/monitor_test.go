package balance

import (
	"context"
	"testing"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeThresholdCache struct {
	minBalance decimal.Decimal
	calls      int
}

func (f *fakeThresholdCache) SetMinBalance(_ context.Context, minBalance decimal.Decimal) error {
	f.minBalance = minBalance
	f.calls++
	return nil
}

func TestIsLow(t *testing.T) {
	tests := []struct {
		name      string
		balance   string
		threshold string
		want      bool
	}{
		{name: "below threshold", balance: "99.99", threshold: "100", want: true},
		{name: "equal is not low", balance: "100", threshold: "100", want: false},
		{name: "above threshold", balance: "100.01", threshold: "100", want: false},
		{name: "zero threshold never alerts", balance: "0", threshold: "0", want: false},
		{name: "zero balance positive threshold", balance: "0", threshold: "1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsLow(decimal.RequireFromString(tt.balance), decimal.RequireFromString(tt.threshold))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetThresholdRejectsNonPositive(t *testing.T) {
	backend := api.NewMockService()
	monitor := NewMonitor(backend, &fakeThresholdCache{}, 20)

	for _, value := range []string{"0", "-1", "-0.01"} {
		_, err := monitor.SetThreshold(context.Background(), decimal.RequireFromString(value))
		require.Error(t, err, "value %s", value)
		assert.True(t, common.IsValidation(err))
	}
	assert.Empty(t, backend.SetMinBalanceCalls, "invalid thresholds never reach the backend")
}

func TestSetThresholdPersistsAndCaches(t *testing.T) {
	backend := api.NewMockService()
	cache := &fakeThresholdCache{}
	monitor := NewMonitor(backend, cache, 20)

	wallet, err := monitor.SetThreshold(context.Background(), decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, wallet.MinBalance.Equal(decimal.NewFromInt(250)))
	assert.True(t, cache.minBalance.Equal(decimal.NewFromInt(250)))
}

func TestSetThresholdLastWriteWins(t *testing.T) {
	backend := api.NewMockService()
	cache := &fakeThresholdCache{}
	monitor := NewMonitor(backend, cache, 20)

	_, err := monitor.SetThreshold(context.Background(), decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = monitor.SetThreshold(context.Background(), decimal.NewFromInt(500))
	require.NoError(t, err)

	require.Len(t, backend.SetMinBalanceCalls, 2)
	assert.True(t, backend.SetMinBalanceCalls[1].Equal(decimal.NewFromInt(500)))
	assert.True(t, cache.minBalance.Equal(decimal.NewFromInt(500)))

	// The previous threshold of 1000 is gone: a balance of 700 is fine now.
	assert.False(t, IsLow(decimal.NewFromInt(700), cache.minBalance))
}

func TestSetThresholdBackendFailure(t *testing.T) {
	backend := api.NewMockService()
	backend.SetMinBalanceFn = func(_ context.Context, _ int64, _ decimal.Decimal) (*model.Wallet, error) {
		return nil, &common.ServerError{StatusCode: 500, Message: "boom"}
	}
	cache := &fakeThresholdCache{}
	monitor := NewMonitor(backend, cache, 20)

	_, err := monitor.SetThreshold(context.Background(), decimal.NewFromInt(100))
	require.Error(t, err)
	assert.Zero(t, cache.calls, "cache untouched when the save fails")
}
