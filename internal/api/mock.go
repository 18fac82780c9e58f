package api

import (
	"context"

	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
)

// MockService is a function-field fake of WalletService for tests. Unset
// functions fall back to common.ErrNotFound so provisioning tests can model
// a brand-new user without any setup.
type MockService struct {
	RegisterFn         func(ctx context.Context, username, password string) error
	LoginFn            func(ctx context.Context, username, password string) (*Credentials, error)
	GetAccountByUserFn func(ctx context.Context, userID int64) (*model.BankAccount, error)
	CreateAccountFn    func(ctx context.Context, userID int64, holderName string) (*model.BankAccount, error)
	SearchReceiverFn   func(ctx context.Context, accountNumber, accountHolder string) (*model.Receiver, error)
	GetWalletByUserFn  func(ctx context.Context, userID int64) (*model.Wallet, error)
	CreateWalletFn     func(ctx context.Context, userID int64) (*model.Wallet, error)
	AddMoneyFn         func(ctx context.Context, req AddMoneyRequest) (decimal.Decimal, error)
	SendMoneyFn        func(ctx context.Context, req SendMoneyRequest) (decimal.Decimal, error)
	SetMinBalanceFn    func(ctx context.Context, walletID int64, minBalance decimal.Decimal) (*model.Wallet, error)
	GetHistoryFn       func(ctx context.Context, req HistoryRequest) (*HistoryPage, error)
	GetAnalyticsFn     func(ctx context.Context, walletID int64, period model.Period) (*model.AnalyticsSnapshot, error)

	// Call tracking.
	AddMoneyCalls      []AddMoneyRequest
	SendMoneyCalls     []SendMoneyRequest
	SetMinBalanceCalls []decimal.Decimal
	HistoryCalls       []HistoryRequest
	AnalyticsCalls     []model.Period
}

// NewMockService creates an empty mock backend.
func NewMockService() *MockService {
	return &MockService{}
}

// Register implements WalletService.
func (m *MockService) Register(ctx context.Context, username, password string) error {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, password)
	}
	return nil
}

// Login implements WalletService.
func (m *MockService) Login(ctx context.Context, username, password string) (*Credentials, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return &Credentials{UserID: 1, Username: username, Token: "test-token"}, nil
}

// GetAccountByUser implements WalletService.
func (m *MockService) GetAccountByUser(ctx context.Context, userID int64) (*model.BankAccount, error) {
	if m.GetAccountByUserFn != nil {
		return m.GetAccountByUserFn(ctx, userID)
	}
	return nil, common.ErrNotFound
}

// CreateAccount implements WalletService.
func (m *MockService) CreateAccount(ctx context.Context, userID int64, holderName string) (*model.BankAccount, error) {
	if m.CreateAccountFn != nil {
		return m.CreateAccountFn(ctx, userID, holderName)
	}
	return nil, common.ErrNotFound
}

// SearchReceiver implements WalletService.
func (m *MockService) SearchReceiver(ctx context.Context, accountNumber, accountHolder string) (*model.Receiver, error) {
	if m.SearchReceiverFn != nil {
		return m.SearchReceiverFn(ctx, accountNumber, accountHolder)
	}
	return nil, common.ErrNotFound
}

// GetWalletByUser implements WalletService.
func (m *MockService) GetWalletByUser(ctx context.Context, userID int64) (*model.Wallet, error) {
	if m.GetWalletByUserFn != nil {
		return m.GetWalletByUserFn(ctx, userID)
	}
	return nil, common.ErrNotFound
}

// CreateWallet implements WalletService.
func (m *MockService) CreateWallet(ctx context.Context, userID int64) (*model.Wallet, error) {
	if m.CreateWalletFn != nil {
		return m.CreateWalletFn(ctx, userID)
	}
	return nil, common.ErrNotFound
}

// AddMoney implements WalletService.
func (m *MockService) AddMoney(ctx context.Context, req AddMoneyRequest) (decimal.Decimal, error) {
	m.AddMoneyCalls = append(m.AddMoneyCalls, req)
	if m.AddMoneyFn != nil {
		return m.AddMoneyFn(ctx, req)
	}
	return decimal.Zero, nil
}

// SendMoney implements WalletService.
func (m *MockService) SendMoney(ctx context.Context, req SendMoneyRequest) (decimal.Decimal, error) {
	m.SendMoneyCalls = append(m.SendMoneyCalls, req)
	if m.SendMoneyFn != nil {
		return m.SendMoneyFn(ctx, req)
	}
	return decimal.Zero, nil
}

// SetMinBalance implements WalletService.
func (m *MockService) SetMinBalance(ctx context.Context, walletID int64, minBalance decimal.Decimal) (*model.Wallet, error) {
	m.SetMinBalanceCalls = append(m.SetMinBalanceCalls, minBalance)
	if m.SetMinBalanceFn != nil {
		return m.SetMinBalanceFn(ctx, walletID, minBalance)
	}
	return &model.Wallet{ID: walletID, MinBalance: minBalance}, nil
}

// GetHistory implements WalletService.
func (m *MockService) GetHistory(ctx context.Context, req HistoryRequest) (*HistoryPage, error) {
	m.HistoryCalls = append(m.HistoryCalls, req)
	if m.GetHistoryFn != nil {
		return m.GetHistoryFn(ctx, req)
	}
	return &HistoryPage{}, nil
}

// GetAnalytics implements WalletService.
func (m *MockService) GetAnalytics(ctx context.Context, walletID int64, period model.Period) (*model.AnalyticsSnapshot, error) {
	m.AnalyticsCalls = append(m.AnalyticsCalls, period)
	if m.GetAnalyticsFn != nil {
		return m.GetAnalyticsFn(ctx, walletID, period)
	}
	return &model.AnalyticsSnapshot{Period: period}, nil
}

// Ensure MockService implements the backend contract.
var _ WalletService = (*MockService)(nil)
