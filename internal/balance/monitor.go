package balance

import (
	"context"
	"fmt"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
)

// IsLow reports whether the balance has fallen below the threshold. The
// boundary balance == threshold is not low. Pure predicate, recomputed on
// every balance or threshold change and never cached.
func IsLow(balance, threshold decimal.Decimal) bool {
	return balance.LessThan(threshold)
}

// ThresholdCache mirrors the persisted threshold into the local session.
type ThresholdCache interface {
	SetMinBalance(ctx context.Context, minBalance decimal.Decimal) error
}

// Monitor persists the minimum-balance threshold. One threshold per
// wallet, overwritten on each save: last write wins, no history.
type Monitor struct {
	backend  api.WalletService
	cache    ThresholdCache
	walletID int64
}

// NewMonitor creates a low-balance monitor for one wallet.
func NewMonitor(backend api.WalletService, cache ThresholdCache, walletID int64) *Monitor {
	return &Monitor{backend: backend, cache: cache, walletID: walletID}
}

// SetThreshold validates and persists a new threshold, returning the
// updated wallet.
func (m *Monitor) SetThreshold(ctx context.Context, value decimal.Decimal) (*model.Wallet, error) {
	if !value.IsPositive() {
		return nil, common.NewValidationError("threshold", "threshold must be greater than zero")
	}

	wallet, err := m.backend.SetMinBalance(ctx, m.walletID, value)
	if err != nil {
		return nil, fmt.Errorf("failed to save threshold: %w", err)
	}

	if err := m.cache.SetMinBalance(ctx, wallet.MinBalance); err != nil {
		return nil, fmt.Errorf("failed to cache threshold: %w", err)
	}
	return wallet, nil
}
