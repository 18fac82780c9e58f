package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/cli"
	"github.com/pursecli/purse/internal/provision"
	"github.com/spf13/cobra"
)

func setupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision your bank account and wallet",
		Long: `Walk through the one-time setup sequence: create a bank account, then a
wallet linked to it. The wallet cannot be created before the account.`,
	}

	cmd.AddCommand(setupStatusCmd())
	cmd.AddCommand(setupAccountCmd())
	cmd.AddCommand(setupWalletCmd())
	return cmd
}

func setupStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where you are in the setup sequence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}

			prov := provision.NewController(a.client, a.store, a.sess.UserID)
			status, err := prov.Initialize(ctx)
			if err != nil {
				return fmt.Errorf("setup check failed (retry with 'purse setup status'): %w", err)
			}

			printSetupStatus(status)
			return nil
		},
	}
}

func setupAccountCmd() *cobra.Command {
	var holderName string

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create your bank account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}

			if holderName == "" {
				holderName, err = promptLine("Account holder name: ")
				if err != nil {
					return err
				}
			}

			prov := provision.NewController(a.client, a.store, a.sess.UserID)
			if _, err := prov.Initialize(ctx); err != nil {
				return err
			}

			status, err := prov.CreateAccount(ctx, holderName)
			if err != nil {
				return fmt.Errorf("failed to create bank account: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Bank account created."))
			printSetupStatus(status)
			return nil
		},
	}

	cmd.Flags().StringVar(&holderName, "name", "", "account holder name (prompted when omitted)")
	return cmd
}

func setupWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Create your wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireLogin(); err != nil {
				return err
			}

			prov := provision.NewController(a.client, a.store, a.sess.UserID)
			if _, err := prov.Initialize(ctx); err != nil {
				return err
			}

			status, err := prov.CreateWallet(ctx)
			if err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Wallet created."))
			printSetupStatus(status)
			return nil
		},
	}
}

func printSetupStatus(status provision.Status) {
	switch status.State {
	case provision.StateNeedsAccount:
		fmt.Println(cli.FormatWarning("No bank account yet. Run 'purse setup account --name \"Your Name\"'."))
	case provision.StateNeedsWallet:
		fmt.Println(cli.FormatWarning("Bank account ready, wallet missing. Run 'purse setup wallet'."))
		if status.Account != nil {
			fmt.Printf("  %s %s • %s\n", cli.BankIcon, status.Account.AccountHolderName, status.Account.AccountNumber)
		}
	case provision.StateReady:
		fmt.Println(cli.FormatSuccess("Setup complete. Your wallet is ready."))
	case provision.StateError:
		fmt.Println(cli.FormatError(fmt.Sprintf("Setup check failed: %v", status.Err)))
	default:
		fmt.Println(cli.InfoStyle.Render("Setup state: " + status.State.String()))
	}
}
