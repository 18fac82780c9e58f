// Package model defines the core domain types for the wallet client.
package model

import (
	"github.com/shopspring/decimal"
)

// User identifies the authenticated user. Immutable after registration.
type User struct {
	Username string `json:"username"`
	ID       int64  `json:"userId"`
}

// BankAccount is the user's primary funding account. The balance is owned by
// the backend and never written by the client.
type BankAccount struct {
	AccountHolderName string          `json:"accountHolderName"`
	AccountNumber     string          `json:"accountNumber"`
	Balance           decimal.Decimal `json:"balance"`
	ID                int64           `json:"id"`
}

// Wallet is the spendable balance linked to exactly one bank account.
type Wallet struct {
	Balance    decimal.Decimal `json:"balance"`
	MinBalance decimal.Decimal `json:"minBalance"`
	ID         int64           `json:"id"`
	AccountID  int64           `json:"accountId"`
}

// Receiver is the result of a receiver lookup. It is transient: it must be
// present (and fresh) before a send-money submission is allowed, and it is
// cleared after every submission.
type Receiver struct {
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
}
