package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes wallet credits from debits.
type TransactionType string

const (
	// TypeAddMoney is a credit from the bank account into the wallet.
	TypeAddMoney TransactionType = "ADD_MONEY"
	// TypeSendMoney is a debit from the wallet to another account.
	TypeSendMoney TransactionType = "SEND_MONEY"
)

// TransactionStatus is the backend-reported state of a movement.
type TransactionStatus string

const (
	// StatusPending means the movement has been accepted but not settled.
	StatusPending TransactionStatus = "PENDING"
	// StatusSuccess means the movement settled.
	StatusSuccess TransactionStatus = "SUCCESS"
	// StatusFailed means the movement was rejected or failed to settle.
	StatusFailed TransactionStatus = "FAILED"
)

// Transaction is a single movement record. Append-only from the client's
// perspective: records are produced by the backend as the effect of a
// movement request and never modified locally.
type Transaction struct {
	CreatedAt   time.Time         `json:"createdAt"`
	Type        TransactionType   `json:"type"`
	SenderRef   string            `json:"senderRef"`
	ReceiverRef string            `json:"receiverRef"`
	Category    Category          `json:"category"`
	Purpose     string            `json:"purpose"`
	Status      TransactionStatus `json:"status"`
	Amount      decimal.Decimal   `json:"amount"`
	ID          int64             `json:"id"`
}
