package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/cli"
	"github.com/pursecli/purse/internal/model"
	"github.com/pursecli/purse/internal/movement"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sendCmd() *cobra.Command {
	var (
		accountNumber string
		holderName    string
		category      string
		purpose       string
		yes           bool
	)

	cmd := &cobra.Command{
		Use:   "send <amount>",
		Short: "Send money from your wallet to another account",
		Long: `Send money in two steps: the receiver is looked up and confirmed first,
then the transfer is submitted. A transfer can never be sent to an
unconfirmed account number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
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
			snap, err := sync.Refresh(ctx)
			if err != nil {
				return err
			}

			ctrl := movement.NewController(a.client, sync, a.sess.AccountID, a.sess.WalletID)

			// Phase one: confirm the receiver exists exactly as typed.
			receiver, err := ctrl.LookupReceiver(ctx, accountNumber, holderName)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderBox("Confirm transfer", fmt.Sprintf(
				"To:      %s\nAccount: %s\nAmount:  %s\nBalance: %s available",
				receiver.AccountHolderName,
				receiver.AccountNumber,
				cli.AmountStyle.Render(amount.StringFixed(2)),
				snap.Wallet.Balance.StringFixed(2))))

			if !yes {
				ok, err := confirm("Send it?")
				if err != nil {
					return err
				}
				if !ok {
					ctrl.ClearReceiver()
					fmt.Println(cli.InfoStyle.Render("Transfer cancelled."))
					return nil
				}
			}

			// Phase two: submit against the confirmed receiver.
			newBalance, err := ctrl.SubmitSendMoney(ctx, amount, cat, purpose)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Sent %s to %s. Wallet balance: %s",
				amount.StringFixed(2),
				receiver.AccountHolderName,
				cli.AmountStyle.Render(newBalance.StringFixed(2)))))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "receiver account number (required)")
	cmd.Flags().StringVar(&holderName, "name", "", "receiver account holder name (required)")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOthers), "spending category")
	cmd.Flags().StringVar(&purpose, "purpose", "", "transfer purpose")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
