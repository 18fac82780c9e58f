// Package movement validates and submits add-money and send-money
// operations against the wallet backend.
package movement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/balance"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
)

// MinAddMoneyGuidance is the presentation-layer minimum for add-money.
// Amounts of at least 1 are accepted locally; the backend enforces this
// guidance value.
var MinAddMoneyGuidance = decimal.NewFromInt(10)

// minAmount is the hard local minimum for any movement.
var minAmount = decimal.NewFromInt(1)

// Controller validates and submits money movements. Send-money is a
// two-phase protocol: a submission can only happen from the armed state a
// successful receiver lookup produces, which makes "send without a fresh
// lookup" unrepresentable.
type Controller struct {
	backend   api.WalletService
	sync      *balance.Synchronizer
	logger    *slog.Logger
	receiver  *model.Receiver
	accountID int64
	walletID  int64
	pending   bool
	mu        sync.Mutex
}

// NewController creates a movement controller bound to the authoritative
// account and wallet ids cached after provisioning.
func NewController(backend api.WalletService, sync *balance.Synchronizer, accountID, walletID int64) *Controller {
	return &Controller{
		backend:   backend,
		sync:      sync,
		accountID: accountID,
		walletID:  walletID,
		logger:    slog.Default().With("component", "movement"),
	}
}

// beginMutation refuses a second concurrent submission of the same logical
// mutation while one is outstanding.
func (c *Controller) beginMutation() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return common.ErrMutationPending
	}
	c.pending = true
	return nil
}

func (c *Controller) endMutation() {
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()
}

// SubmitAddMoney credits the wallet from the bank account. Invalid amounts
// are rejected locally with no network call. On success the wallet balance
// is replaced with the backend's value and a reconciling refresh follows.
func (c *Controller) SubmitAddMoney(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThan(minAmount) {
		return decimal.Zero, common.NewValidationError("amount", "enter a valid amount (minimum 1)")
	}

	if err := c.beginMutation(); err != nil {
		return decimal.Zero, err
	}
	defer c.endMutation()

	newBalance, err := c.backend.AddMoney(ctx, api.AddMoneyRequest{
		AccountID: c.accountID,
		WalletID:  c.walletID,
		Amount:    amount,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to add money: %w", err)
	}

	c.sync.ApplyWalletBalance(newBalance)
	c.reconcile(ctx)
	return newBalance, nil
}

// LookupReceiver queries the backend for an exact receiver match and arms
// the controller. Any failure clears a previously armed receiver so a
// stale confirmation can never back a submission.
func (c *Controller) LookupReceiver(ctx context.Context, accountNumber, holderName string) (*model.Receiver, error) {
	if strings.TrimSpace(accountNumber) == "" || strings.TrimSpace(holderName) == "" {
		return nil, common.NewValidationError("receiver", "enter both account number and account holder name")
	}

	receiver, err := c.backend.SearchReceiver(ctx, accountNumber, holderName)
	if err != nil {
		c.mu.Lock()
		c.receiver = nil
		c.mu.Unlock()
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("receiver account not found: %w", err)
		}
		return nil, fmt.Errorf("receiver lookup failed: %w", err)
	}

	c.mu.Lock()
	c.receiver = receiver
	c.mu.Unlock()
	c.logger.Debug("Receiver confirmed", "account_number", receiver.AccountNumber)
	return receiver, nil
}

// Receiver returns the armed receiver, if any.
func (c *Controller) Receiver() (*model.Receiver, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receiver == nil {
		return nil, false
	}
	r := *c.receiver
	return &r, true
}

// ClearReceiver disarms the controller, e.g. when the user abandons the
// send flow.
func (c *Controller) ClearReceiver() {
	c.mu.Lock()
	c.receiver = nil
	c.mu.Unlock()
}

// SubmitSendMoney debits the wallet toward the armed receiver. The amount
// is checked against the last-synchronized wallet balance; the backend
// remains the final authority and its insufficient-funds rejection is
// surfaced verbatim. Success disarms the controller and clears the form
// state it guarded.
func (c *Controller) SubmitSendMoney(ctx context.Context, amount decimal.Decimal, category model.Category, purpose string) (decimal.Decimal, error) {
	c.mu.Lock()
	receiver := c.receiver
	c.mu.Unlock()

	if receiver == nil {
		return decimal.Zero, common.NewValidationError("receiver", "search and confirm the receiver first")
	}
	if amount.LessThan(minAmount) {
		return decimal.Zero, common.NewValidationError("amount", "enter a valid amount (minimum 1)")
	}
	if !category.Valid() {
		return decimal.Zero, common.NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}

	snap, ok := c.sync.Last()
	if !ok {
		return decimal.Zero, common.NewValidationError("balance", "wallet balance not loaded; refresh and try again")
	}
	if amount.GreaterThan(snap.Wallet.Balance) {
		return decimal.Zero, common.NewValidationError("amount",
			fmt.Sprintf("insufficient balance: %s available", snap.Wallet.Balance))
	}

	if err := c.beginMutation(); err != nil {
		return decimal.Zero, err
	}
	defer c.endMutation()

	newBalance, err := c.backend.SendMoney(ctx, api.SendMoneyRequest{
		SenderWalletID:        c.walletID,
		ReceiverAccountNumber: receiver.AccountNumber,
		Amount:                amount,
		Category:              category,
		Purpose:               purpose,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to send money: %w", err)
	}

	c.mu.Lock()
	c.receiver = nil
	c.mu.Unlock()

	c.sync.ApplyWalletBalance(newBalance)
	c.reconcile(ctx)
	return newBalance, nil
}

// reconcile runs the post-mutation balance refresh. Sequenced after the
// mutation's success response, never issued speculatively in parallel.
// A failed reconciliation keeps the response-derived balance in place.
func (c *Controller) reconcile(ctx context.Context) {
	if _, err := c.sync.Refresh(ctx); err != nil {
		c.logger.Warn("Post-mutation balance refresh failed", "error", err)
	}
}
