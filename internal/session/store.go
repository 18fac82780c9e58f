// Package session persists the authenticated user's identity and locally
// cached wallet identifiers across process restarts.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Session is the locally cached tuple. The backend is the source of truth
// for every field except the auth token; cached ids are refreshed after
// every confirmed provisioning step or balance fetch.
type Session struct {
	Username   string
	Token      string
	ThemeMode  string
	MinBalance decimal.Decimal
	UserID     int64
	WalletID   int64
	AccountID  int64
}

// LoggedIn reports whether a user is authenticated in this session.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != 0 && s.Token != ""
}

// Provisioned reports whether the cached ids point at a complete setup.
func (s *Session) Provisioned() bool {
	return s != nil && s.AccountID != 0 && s.WalletID != 0
}

// Store is the SQLite-backed session store. The session row is written only
// after a confirmed backend response, never speculatively.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the session database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("session database path is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the current session. Returns an empty session when no user
// has logged in yet.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, auth_token, wallet_id, account_id, min_balance, theme_mode
		FROM session WHERE id = 1`)

	var (
		sess       Session
		minBalance string
	)
	err := row.Scan(&sess.UserID, &sess.Username, &sess.Token,
		&sess.WalletID, &sess.AccountID, &minBalance, &sess.ThemeMode)
	if errors.Is(err, sql.ErrNoRows) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess.MinBalance, err = decimal.NewFromString(minBalance)
	if err != nil {
		return nil, fmt.Errorf("corrupt min_balance in session: %w", err)
	}
	return &sess, nil
}

// Init writes the credentials of a freshly logged-in user, replacing any
// previous session.
func (s *Store) Init(ctx context.Context, userID int64, username, token string) error {
	if userID == 0 || token == "" {
		return fmt.Errorf("user id and token are required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, username, auth_token, wallet_id, account_id, min_balance, theme_mode)
		VALUES (1, ?, ?, ?, 0, 0, '0', 'light')
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			auth_token = excluded.auth_token,
			wallet_id = 0,
			account_id = 0,
			min_balance = '0'`,
		userID, username, token)
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	return nil
}

// SetIDs caches the authoritative account and wallet ids returned by the
// backend. Called only after a confirmed creation or lookup.
func (s *Store) SetIDs(ctx context.Context, accountID, walletID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE session SET account_id = ?, wallet_id = ? WHERE id = 1`,
		accountID, walletID)
	if err != nil {
		return fmt.Errorf("failed to cache ids: %w", err)
	}
	return requireSessionRow(res)
}

// SetMinBalance mirrors the persisted low-balance threshold locally.
func (s *Store) SetMinBalance(ctx context.Context, minBalance decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE session SET min_balance = ? WHERE id = 1`,
		minBalance.String())
	if err != nil {
		return fmt.Errorf("failed to cache min balance: %w", err)
	}
	return requireSessionRow(res)
}

// SetThemeMode stores the presentation theme preference.
func (s *Store) SetThemeMode(ctx context.Context, mode string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE session SET theme_mode = ? WHERE id = 1`, mode)
	if err != nil {
		return fmt.Errorf("failed to store theme mode: %w", err)
	}
	return requireSessionRow(res)
}

// Clear removes the session entirely. Logout path.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func requireSessionRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check session update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no active session")
	}
	return nil
}
