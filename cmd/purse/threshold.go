package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/balance"
	"github.com/pursecli/purse/internal/cli"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func thresholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Manage the low-balance alert threshold",
	}

	cmd.AddCommand(thresholdShowCmd())
	cmd.AddCommand(thresholdSetCmd())
	return cmd
}

func thresholdShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current threshold and alert state",
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

			threshold := snap.Wallet.MinBalance
			if !threshold.IsPositive() {
				fmt.Println(cli.InfoStyle.Render("No threshold set. Use 'purse threshold set <amount>'."))
				return nil
			}

			fmt.Printf("%s Threshold: %s\n", cli.AlertIcon, threshold.StringFixed(2))
			if balance.IsLow(snap.Wallet.Balance, threshold) {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Wallet balance %s is below the threshold.",
					snap.Wallet.Balance.StringFixed(2))))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf(
					"Wallet balance %s is above the threshold.",
					snap.Wallet.Balance.StringFixed(2))))
			}
			return nil
		},
	}
}

func thresholdSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the minimum-balance alert threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			value, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", args[0], err)
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireReady(ctx); err != nil {
				return err
			}

			monitor := balance.NewMonitor(a.client, a.store, a.sess.WalletID)
			wallet, err := monitor.SetThreshold(ctx, value)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Alert threshold set to %s", wallet.MinBalance.StringFixed(2))))
			return nil
		},
	}
}
