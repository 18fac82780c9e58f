// Package analytics requests and shapes period-scoped spending analytics.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
)

// Aggregator fetches the spending snapshot for the selected period.
// Snapshots are replaced wholesale: a consumer never observes a blend of
// two periods, and a failed refresh never blanks the last good snapshot.
type Aggregator struct {
	backend  api.WalletService
	logger   *slog.Logger
	snapshot *model.AnalyticsSnapshot
	period   model.Period
	walletID int64
	gen      uint64
	mu       sync.Mutex
}

// NewAggregator creates an analytics aggregator for one wallet.
func NewAggregator(backend api.WalletService, walletID int64) *Aggregator {
	return &Aggregator{
		backend:  backend,
		walletID: walletID,
		period:   model.PeriodWeek,
		logger:   slog.Default().With("component", "analytics"),
	}
}

// SetPeriod selects the aggregation window. Any in-flight refresh started
// under the previous period is discarded when it resolves.
func (a *Aggregator) SetPeriod(p model.Period) {
	a.mu.Lock()
	if a.period != p {
		a.period = p
		a.gen++
	}
	a.mu.Unlock()
}

// Period returns the currently selected window.
func (a *Aggregator) Period() model.Period {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.period
}

// Refresh fetches a fresh snapshot for the current period and replaces the
// cached one atomically. A stale response (period changed while the fetch
// was in flight) is discarded rather than applied out of order.
func (a *Aggregator) Refresh(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	a.mu.Lock()
	gen, period := a.gen, a.period
	a.mu.Unlock()

	snap, err := a.backend.GetAnalytics(ctx, a.walletID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analytics: %w", err)
	}
	snap.Period = period

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		a.logger.Debug("Discarding stale analytics result", "period", period)
		return nil, common.ErrStaleResult
	}
	a.snapshot = snap
	return snap, nil
}

// Snapshot returns the last good snapshot, if any.
func (a *Aggregator) Snapshot() (*model.AnalyticsSnapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snapshot == nil {
		return nil, false
	}
	return a.snapshot, true
}
