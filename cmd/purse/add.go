package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/cli"
	"github.com/pursecli/purse/internal/movement"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <amount>",
		Short: "Add money from your bank account to your wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireReady(ctx); err != nil {
				return err
			}

			sync := a.newSynchronizer()
			if _, err := sync.Refresh(ctx); err != nil {
				return err
			}

			if amount.LessThan(movement.MinAddMoneyGuidance) {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Amounts below %s may be rejected by the backend.",
					movement.MinAddMoneyGuidance)))
			}

			ctrl := movement.NewController(a.client, sync, a.sess.AccountID, a.sess.WalletID)
			newBalance, err := ctrl.SubmitAddMoney(ctx, amount)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added %s. Wallet balance: %s",
				amount.StringFixed(2),
				cli.AmountStyle.Render(newBalance.StringFixed(2)))))
			return nil
		},
	}
}
