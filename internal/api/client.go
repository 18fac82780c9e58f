// Package api provides the HTTP client for the wallet backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
)

// Config holds wallet backend connection settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api base URL is required", common.ErrMissingConfig)
	}
	return nil
}

// Client implements WalletService against the backend REST API.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	token      string
	retryOpts  common.RetryOptions
}

// NewClient creates a wallet backend client. The token may be empty for
// the unauthenticated register/login calls.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.Default().With("component", "api"),
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// SetToken installs the session token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new user.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", nil, body, nil, "")
}

// Login authenticates and returns the session credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*Credentials, error) {
	body := map[string]string{"username": username, "password": password}
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &creds, ""); err != nil {
		return nil, err
	}
	return &creds, nil
}

// GetAccountByUser fetches the user's bank account. Returns
// common.ErrNotFound when the account has not been provisioned yet.
func (c *Client) GetAccountByUser(ctx context.Context, userID int64) (*model.BankAccount, error) {
	var account model.BankAccount
	path := fmt.Sprintf("/account/by-user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &account, ""); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount provisions the user's bank account.
func (c *Client) CreateAccount(ctx context.Context, userID int64, holderName string) (*model.BankAccount, error) {
	var account model.BankAccount
	path := fmt.Sprintf("/account/create/%d", userID)
	query := url.Values{"name": []string{holderName}}
	if err := c.do(ctx, http.MethodPost, path, query, nil, &account, ""); err != nil {
		return nil, err
	}
	return &account, nil
}

// SearchReceiver looks up a transfer receiver by exact account number and
// holder name. Returns common.ErrNotFound when there is no exact match.
func (c *Client) SearchReceiver(ctx context.Context, accountNumber, accountHolder string) (*model.Receiver, error) {
	var receiver model.Receiver
	query := url.Values{
		"accountNumber": []string{accountNumber},
		"accountHolder": []string{accountHolder},
	}
	if err := c.do(ctx, http.MethodGet, "/account/search", query, nil, &receiver, ""); err != nil {
		return nil, err
	}
	return &receiver, nil
}

// GetWalletByUser fetches the user's wallet. Returns common.ErrNotFound
// when the wallet has not been provisioned yet.
func (c *Client) GetWalletByUser(ctx context.Context, userID int64) (*model.Wallet, error) {
	var wallet model.Wallet
	path := fmt.Sprintf("/wallet/by-user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &wallet, ""); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// CreateWallet provisions the user's wallet. The backend rejects this when
// no bank account exists yet.
func (c *Client) CreateWallet(ctx context.Context, userID int64) (*model.Wallet, error) {
	var wallet model.Wallet
	path := fmt.Sprintf("/wallet/create/%d", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &wallet, ""); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// balanceResponse is the backend's answer to a money movement: the new
// authoritative wallet balance.
type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// AddMoney credits the wallet from the bank account and returns the new
// wallet balance as computed by the backend.
func (c *Client) AddMoney(ctx context.Context, req AddMoneyRequest) (decimal.Decimal, error) {
	var resp balanceResponse
	key := uuid.NewString()
	if err := c.do(ctx, http.MethodPost, "/wallet/add-money", nil, req, &resp, key); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

// SendMoney debits the wallet toward the receiver and returns the new
// wallet balance as computed by the backend.
func (c *Client) SendMoney(ctx context.Context, req SendMoneyRequest) (decimal.Decimal, error) {
	var resp balanceResponse
	key := uuid.NewString()
	if err := c.do(ctx, http.MethodPost, "/wallet/send-money", nil, req, &resp, key); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

// SetMinBalance persists the low-balance alert threshold for the wallet.
// Last write wins; the backend keeps no history.
func (c *Client) SetMinBalance(ctx context.Context, walletID int64, minBalance decimal.Decimal) (*model.Wallet, error) {
	var wallet model.Wallet
	path := fmt.Sprintf("/wallet/%d/min-balance", walletID)
	body := map[string]decimal.Decimal{"minBalance": minBalance}
	if err := c.do(ctx, http.MethodPut, path, nil, body, &wallet, ""); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetHistory fetches one page of filtered transaction history.
func (c *Client) GetHistory(ctx context.Context, req HistoryRequest) (*HistoryPage, error) {
	query := url.Values{
		"page": []string{strconv.Itoa(req.Page)},
		"size": []string{strconv.Itoa(req.Size)},
	}
	if req.Type != nil {
		query.Set("type", string(*req.Type))
	}
	if req.Status != nil {
		query.Set("status", string(*req.Status))
	}
	if req.Category != nil {
		query.Set("category", string(*req.Category))
	}
	if req.Search != "" {
		query.Set("search", req.Search)
	}
	if req.DateFrom != nil {
		query.Set("dateFrom", req.DateFrom.Format("2006-01-02"))
	}
	if req.DateTo != nil {
		query.Set("dateTo", req.DateTo.Format("2006-01-02"))
	}

	var page HistoryPage
	path := fmt.Sprintf("/wallet/history/%d", req.WalletID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page, ""); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAnalytics fetches the period-scoped spending snapshot.
func (c *Client) GetAnalytics(ctx context.Context, walletID int64, period model.Period) (*model.AnalyticsSnapshot, error) {
	var snapshot model.AnalyticsSnapshot
	path := fmt.Sprintf("/wallet/analytics/%d", walletID)
	query := url.Values{"period": []string{string(period)}}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &snapshot, ""); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Message string `json:"message"`
}

// do performs one backend request with retry on transient failures,
// mapping HTTP status codes onto the shared error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any, idempotencyKey string) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	return common.WithRetry(ctx, func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		c.logger.Debug("Backend request", "method", method, "path", path)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Transport failures are safe to retry: reads are idempotent
			// and mutations carry an idempotency key.
			return &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				c.logger.Warn("failed to close response body", "error", closeErr)
			}
		}()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to read response: %w", err), Retryable: true}
		}

		if err := c.checkStatus(resp.StatusCode, respBody); err != nil {
			return err
		}

		if target != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, target); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil
	}, c.retryOpts)
}

// checkStatus maps a non-2xx response onto the error taxonomy.
func (c *Client) checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var errResp errorResponse
	_ = json.Unmarshal(body, &errResp)

	switch {
	case status == http.StatusNotFound:
		return common.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return common.ErrAuthentication
	case status == http.StatusTooManyRequests ||
		status == http.StatusBadGateway ||
		status == http.StatusServiceUnavailable:
		c.logger.Warn("Transient backend failure", "status", status)
		return &common.RetryableError{
			Err:       &common.ServerError{StatusCode: status, Message: errResp.Message},
			Retryable: true,
		}
	default:
		return &common.ServerError{StatusCode: status, Message: errResp.Message}
	}
}

// Ensure Client implements the backend contract.
var _ WalletService = (*Client)(nil)
