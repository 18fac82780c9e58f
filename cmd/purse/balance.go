package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/balance"
	"github.com/pursecli/purse/internal/cli"
	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show bank account and wallet balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireReady(ctx); err != nil {
				return err
			}

			snap, err := a.newSynchronizer().Refresh(ctx)
			if err != nil {
				return err
			}

			content := fmt.Sprintf("%s Bank account  %s\n   %s • %s\n\n%s Wallet        %s",
				cli.BankIcon,
				cli.AmountStyle.Render(snap.Account.Balance.StringFixed(2)),
				snap.Account.AccountHolderName,
				snap.Account.AccountNumber,
				cli.WalletIcon,
				cli.AmountStyle.Render(snap.Wallet.Balance.StringFixed(2)))
			fmt.Println(cli.RenderBox("Balances", content))

			threshold := snap.Wallet.MinBalance
			if threshold.IsPositive() {
				if balance.IsLow(snap.Wallet.Balance, threshold) {
					fmt.Println(cli.FormatWarning(fmt.Sprintf(
						"Low balance! Current: %s | Threshold: %s — top up with 'purse add'.",
						snap.Wallet.Balance.StringFixed(2), threshold.StringFixed(2))))
				} else {
					fmt.Println(cli.InfoStyle.Render(fmt.Sprintf(
						"%s Alert active at %s", cli.AlertIcon, threshold.StringFixed(2))))
				}
			}
			return nil
		},
	}
}
