package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "purse.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestLoadEmptySession(t *testing.T) {
	store := newTestStore(t)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
	assert.False(t, sess.Provisioned())
}

func TestInitAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Init(ctx, 42, "ada", "tok-1"))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, "ada", sess.Username)
	assert.Equal(t, "tok-1", sess.Token)
	assert.False(t, sess.Provisioned())
}

func TestInitRejectsMissingCredentials(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Init(context.Background(), 0, "ada", "tok"))
	assert.Error(t, store.Init(context.Background(), 42, "ada", ""))
}

func TestInitReplacesPreviousSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Init(ctx, 1, "ada", "tok-1"))
	require.NoError(t, store.SetIDs(ctx, 10, 20))
	require.NoError(t, store.SetMinBalance(ctx, decimal.NewFromInt(500)))

	// A new login must not inherit the previous user's cached ids.
	require.NoError(t, store.Init(ctx, 2, "grace", "tok-2"))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sess.UserID)
	assert.False(t, sess.Provisioned())
	assert.True(t, sess.MinBalance.IsZero())
}

func TestSetIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Init(ctx, 42, "ada", "tok"))

	require.NoError(t, store.SetIDs(ctx, 10, 20))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Provisioned())
	assert.Equal(t, int64(10), sess.AccountID)
	assert.Equal(t, int64(20), sess.WalletID)
}

func TestSetIDsRequiresActiveSession(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.SetIDs(context.Background(), 10, 20))
}

func TestSetMinBalanceLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Init(ctx, 42, "ada", "tok"))

	require.NoError(t, store.SetMinBalance(ctx, decimal.NewFromInt(1000)))
	require.NoError(t, store.SetMinBalance(ctx, decimal.NewFromInt(500)))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.MinBalance.Equal(decimal.NewFromInt(500)))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Init(ctx, 42, "ada", "tok"))
	require.NoError(t, store.SetIDs(ctx, 10, 20))

	require.NoError(t, store.Clear(ctx))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
	assert.False(t, sess.Provisioned())
}

func TestSessionSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "purse.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Init(ctx, 42, "ada", "tok"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dbPath)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, reopened.Close())
	}()
	require.NoError(t, reopened.Migrate(ctx))

	sess, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "ada", sess.Username)
}
