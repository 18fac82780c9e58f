package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	// No backoff in tests.
	client.retryOpts = common.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestGetAccountByUserMapsNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"no account"}`, http.StatusNotFound)
	}))

	_, err := client.GetAccountByUser(context.Background(), 1)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestAuthenticationErrorsAreFatal(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := client.GetWalletByUser(context.Background(), 1)
		require.ErrorIs(t, err, common.ErrAuthentication, "status %d", status)
	}
}

func TestServerErrorCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"insufficient funds"}`))
	}))

	_, err := client.SendMoney(context.Background(), SendMoneyRequest{
		SenderWalletID:        7,
		ReceiverAccountNumber: "ACC123",
		Amount:                decimal.NewFromInt(100),
		Category:              model.CategoryOthers,
	})
	require.Error(t, err)

	var serverErr *common.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, "insufficient funds", serverErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, serverErr.StatusCode)
}

func TestAddMoneySendsAuthAndIdempotencyHeaders(t *testing.T) {
	var gotAuth, gotKey string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wallet/add-money", r.URL.Path)
		_, _ = w.Write([]byte(`{"balance":"1500.50"}`))
	}))

	newBalance, err := client.AddMoney(context.Background(), AddMoneyRequest{
		AccountID: 1,
		WalletID:  2,
		Amount:    decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotKey, "mutations carry an idempotency key")
}

func TestGetHistoryEncodesFilters(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/history/9", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`{"content":[],"totalElements":0}`))
	}))

	txType := model.TypeSendMoney
	category := model.CategoryFood
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := client.GetHistory(context.Background(), HistoryRequest{
		WalletID: 9,
		Page:     2,
		Size:     25,
		Type:     &txType,
		Category: &category,
		Search:   "coffee",
		DateFrom: &from,
	})
	require.NoError(t, err)

	assert.Equal(t, "2", gotQuery["page"])
	assert.Equal(t, "25", gotQuery["size"])
	assert.Equal(t, "SEND_MONEY", gotQuery["type"])
	assert.Equal(t, "food", gotQuery["category"])
	assert.Equal(t, "coffee", gotQuery["search"])
	assert.Equal(t, "2026-08-01", gotQuery["dateFrom"])
	_, hasStatus := gotQuery["status"]
	assert.False(t, hasStatus, "nil filters stay off the wire")
}

func TestTransientFailuresAreRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"accountId":1,"balance":"100","minBalance":"0"}`))
	}))

	wallet, err := client.GetWalletByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))
}

func TestLoginReturnsCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"userId":42,"username":"ada","token":"tok-1"}`))
	}))

	creds, err := client.Login(context.Background(), "ada", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), creds.UserID)
	assert.Equal(t, "ada", creds.Username)
	assert.Equal(t, "tok-1", creds.Token)
}
