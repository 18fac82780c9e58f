// Package provision drives the one-time account → wallet setup sequence.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
)

// State is the provisioning step the user is on.
type State int

const (
	// StateLoading means the backend has not been queried yet.
	StateLoading State = iota
	// StateNeedsAccount means no bank account exists for the user.
	StateNeedsAccount
	// StateNeedsWallet means a bank account exists but no wallet does.
	StateNeedsWallet
	// StateReady means both account and wallet exist; every other
	// component is gated on this state.
	StateReady
	// StateError means a non-404 failure occurred. Retryable by calling
	// Initialize again; there is no automatic retry.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNeedsAccount:
		return "needs-account"
	case StateNeedsWallet:
		return "needs-wallet"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Status is the controller's current position in the setup sequence.
// Account and Wallet are only set for the states that reached them.
type Status struct {
	Account *model.BankAccount
	Wallet  *model.Wallet
	Err     error
	State   State
}

// IDCache receives the authoritative ids after a confirmed backend fetch.
type IDCache interface {
	SetIDs(ctx context.Context, accountID, walletID int64) error
}

// Controller is the provisioning state machine. State is always re-derived
// from backend truth after a mutation rather than advanced optimistically,
// so the observed state matches the backend after every step.
type Controller struct {
	backend api.WalletService
	ids     IDCache
	logger  *slog.Logger
	status  Status
	userID  int64
	mu      sync.Mutex
}

// NewController creates a provisioning controller for one user.
func NewController(backend api.WalletService, ids IDCache, userID int64) *Controller {
	return &Controller{
		backend: backend,
		ids:     ids,
		userID:  userID,
		status:  Status{State: StateLoading},
		logger:  slog.Default().With("component", "provision"),
	}
}

// Status returns the last derived status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Initialize re-derives the provisioning state from the backend. Account
// existence is checked strictly before wallet existence. Idempotent: the
// same backend state always yields the same resulting status.
func (c *Controller) Initialize(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializeLocked(ctx)
}

func (c *Controller) initializeLocked(ctx context.Context) (Status, error) {
	c.status = Status{State: StateLoading}

	account, err := c.backend.GetAccountByUser(ctx, c.userID)
	if errors.Is(err, common.ErrNotFound) {
		c.status = Status{State: StateNeedsAccount}
		return c.status, nil
	}
	if err != nil {
		c.status = Status{State: StateError, Err: err}
		return c.status, fmt.Errorf("failed to check bank account: %w", err)
	}

	wallet, err := c.backend.GetWalletByUser(ctx, c.userID)
	if errors.Is(err, common.ErrNotFound) {
		c.status = Status{State: StateNeedsWallet, Account: account}
		return c.status, nil
	}
	if err != nil {
		c.status = Status{State: StateError, Account: account, Err: err}
		return c.status, fmt.Errorf("failed to check wallet: %w", err)
	}

	// Both exist: cache the authoritative ids before reporting ready so a
	// stale id can never be used for a mutation.
	if err := c.ids.SetIDs(ctx, account.ID, wallet.ID); err != nil {
		c.status = Status{State: StateError, Account: account, Wallet: wallet, Err: err}
		return c.status, fmt.Errorf("failed to cache ids: %w", err)
	}

	c.status = Status{State: StateReady, Account: account, Wallet: wallet}
	c.logger.Debug("Provisioning ready", "account_id", account.ID, "wallet_id", wallet.ID)
	return c.status, nil
}

// CreateAccount provisions the bank account and re-derives state. An empty
// or whitespace holder name is rejected locally. On failure the controller
// remains in NeedsAccount with no partial state committed.
func (c *Controller) CreateAccount(ctx context.Context, holderName string) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(holderName) == "" {
		return c.status, common.NewValidationError("name", "account holder name is required")
	}
	if c.status.State != StateNeedsAccount {
		return c.status, common.NewValidationError("state", "no bank account setup step is pending")
	}

	if _, err := c.backend.CreateAccount(ctx, c.userID, strings.TrimSpace(holderName)); err != nil {
		return c.status, fmt.Errorf("failed to create bank account: %w", err)
	}

	return c.initializeLocked(ctx)
}

// CreateWallet provisions the wallet and re-derives state. Only callable
// from NeedsWallet: a wallet cannot exist without a bank account.
func (c *Controller) CreateWallet(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.State != StateNeedsWallet {
		return c.status, common.NewValidationError("state", "wallet setup requires an existing bank account")
	}

	if _, err := c.backend.CreateWallet(ctx, c.userID); err != nil {
		return c.status, fmt.Errorf("failed to create wallet: %w", err)
	}

	return c.initializeLocked(ctx)
}
