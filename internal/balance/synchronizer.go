// Package balance keeps the bank-account and wallet balances consistent
// with the backend and derives the low-balance alert state.
package balance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
)

// Snapshot is a consistent pair of balances fetched together. Presenting a
// stale account balance next to a fresh wallet balance is what this type
// exists to prevent.
type Snapshot struct {
	FetchedAt time.Time
	Account   model.BankAccount
	Wallet    model.Wallet
}

// IDCache receives the authoritative ids after a confirmed backend fetch.
type IDCache interface {
	SetIDs(ctx context.Context, accountID, walletID int64) error
}

// Synchronizer caches the last successfully fetched balance pair. A failed
// refresh leaves prior values in place and reports the failure; it never
// zeroes the cached state.
type Synchronizer struct {
	backend api.WalletService
	ids     IDCache
	logger  *slog.Logger
	last    *Snapshot
	userID  int64
	mu      sync.RWMutex
}

// NewSynchronizer creates a balance synchronizer for one user.
func NewSynchronizer(backend api.WalletService, ids IDCache, userID int64) *Synchronizer {
	return &Synchronizer{
		backend: backend,
		ids:     ids,
		userID:  userID,
		logger:  slog.Default().With("component", "balance"),
	}
}

// Refresh fetches both balances and swaps the cached pair atomically. The
// pair is only replaced once both fetches succeed.
func (s *Synchronizer) Refresh(ctx context.Context) (*Snapshot, error) {
	account, err := s.backend.GetAccountByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh account balance: %w", err)
	}

	wallet, err := s.backend.GetWalletByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh wallet balance: %w", err)
	}

	if err := s.ids.SetIDs(ctx, account.ID, wallet.ID); err != nil {
		return nil, fmt.Errorf("failed to cache refreshed ids: %w", err)
	}

	snap := &Snapshot{
		Account:   *account,
		Wallet:    *wallet,
		FetchedAt: time.Now(),
	}

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	s.logger.Debug("Balances refreshed",
		"account_balance", account.Balance,
		"wallet_balance", wallet.Balance)
	return snap, nil
}

// Last returns the most recent successful snapshot, if any.
func (s *Synchronizer) Last() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, false
	}
	snap := *s.last
	return &snap, true
}

// ApplyWalletBalance replaces the cached wallet balance with the value the
// backend returned from a movement. The balance is never computed locally
// by addition, so server-side fees or rounding can never cause drift.
func (s *Synchronizer) ApplyWalletBalance(newBalance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return
	}
	updated := *s.last
	updated.Wallet.Balance = newBalance
	updated.FetchedAt = time.Now()
	s.last = &updated
}
