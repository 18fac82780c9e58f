package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/balance"
	"github.com/pursecli/purse/internal/config"
	"github.com/pursecli/purse/internal/provision"
	"github.com/pursecli/purse/internal/session"
	"github.com/spf13/viper"
)

// app bundles the session store and backend client every command needs.
type app struct {
	store  *session.Store
	sess   *session.Session
	client *api.Client
}

// newApp opens the session store, migrates it, loads the session and
// builds a backend client carrying the session token (if any).
func newApp(ctx context.Context) (*app, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := session.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	sess, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL: viper.GetString("api.base_url"),
		Token:   sess.Token,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{store: store, sess: sess, client: client}, nil
}

// Close releases the session store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close session store", "error", err)
	}
}

// requireLogin fails with a login hint when no session is active.
func (a *app) requireLogin() error {
	if !a.sess.LoggedIn() {
		return fmt.Errorf("not logged in; run 'purse login' first")
	}
	return nil
}

// requireReady runs provisioning initialization and fails unless the
// account and wallet both exist, pointing the user at 'purse setup'. On
// success the session is reloaded so the freshly cached ids are visible.
func (a *app) requireReady(ctx context.Context) (provision.Status, error) {
	if err := a.requireLogin(); err != nil {
		return provision.Status{}, err
	}

	prov := provision.NewController(a.client, a.store, a.sess.UserID)
	status, err := prov.Initialize(ctx)
	if err != nil {
		return status, err
	}
	if status.State != provision.StateReady {
		return status, fmt.Errorf("wallet not set up yet (%s); run 'purse setup'", status.State)
	}

	sess, err := a.store.Load(ctx)
	if err != nil {
		return status, err
	}
	a.sess = sess
	return status, nil
}

// newSynchronizer builds the balance synchronizer for the logged-in user.
func (a *app) newSynchronizer() *balance.Synchronizer {
	return balance.NewSynchronizer(a.client, a.store, a.sess.UserID)
}

// promptLine reads one line of input after showing a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(question string) (bool, error) {
	answer, err := promptLine(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
