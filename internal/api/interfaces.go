package api

import (
	"context"
	"time"

	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
)

// Credentials is the backend's answer to a successful login.
type Credentials struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
}

// AddMoneyRequest moves money from the bank account into the wallet.
type AddMoneyRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	AccountID int64           `json:"accountId"`
	WalletID  int64           `json:"walletId"`
}

// SendMoneyRequest transfers money from the wallet to another account.
// The receiver account number must come from a confirmed lookup.
type SendMoneyRequest struct {
	ReceiverAccountNumber string          `json:"receiverAccountNumber"`
	Category              model.Category  `json:"category"`
	Purpose               string          `json:"purpose"`
	Amount                decimal.Decimal `json:"amount"`
	SenderWalletID        int64           `json:"senderWalletId"`
}

// HistoryRequest is a filtered, paginated transaction history query.
// Page is 0-based. Nil filter fields mean "no filter".
type HistoryRequest struct {
	Type     *model.TransactionType
	Status   *model.TransactionStatus
	Category *model.Category
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	WalletID int64
	Page     int
	Size     int
}

// HistoryPage is one page of transaction history.
type HistoryPage struct {
	Content       []model.Transaction `json:"content"`
	TotalElements int64               `json:"totalElements"`
}

// WalletService is the backend contract the orchestration layer consumes.
// A single interface keeps every controller mockable with one fake.
type WalletService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*Credentials, error)

	GetAccountByUser(ctx context.Context, userID int64) (*model.BankAccount, error)
	CreateAccount(ctx context.Context, userID int64, holderName string) (*model.BankAccount, error)
	SearchReceiver(ctx context.Context, accountNumber, accountHolder string) (*model.Receiver, error)

	GetWalletByUser(ctx context.Context, userID int64) (*model.Wallet, error)
	CreateWallet(ctx context.Context, userID int64) (*model.Wallet, error)

	AddMoney(ctx context.Context, req AddMoneyRequest) (decimal.Decimal, error)
	SendMoney(ctx context.Context, req SendMoneyRequest) (decimal.Decimal, error)
	SetMinBalance(ctx context.Context, walletID int64, minBalance decimal.Decimal) (*model.Wallet, error)

	GetHistory(ctx context.Context, req HistoryRequest) (*HistoryPage, error)
	GetAnalytics(ctx context.Context, walletID int64, period model.Period) (*model.AnalyticsSnapshot, error)
}
