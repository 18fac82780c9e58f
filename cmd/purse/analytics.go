package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/pursecli/purse/internal/analytics"
	"github.com/pursecli/purse/internal/cli"
	"github.com/pursecli/purse/internal/model"
	"github.com/spf13/cobra"
)

func analyticsCmd() *cobra.Command {
	var periodFlag string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show period spending analytics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, err := model.ParsePeriod(periodFlag)
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

			agg := analytics.NewAggregator(a.client, a.sess.WalletID)
			agg.SetPeriod(period)

			snap, err := agg.Refresh(ctx)
			if err != nil {
				return err
			}

			if !snap.HasData() {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf(
					"No spending data for this %s yet.", period)))
				return nil
			}

			fmt.Println(cli.RenderBox(
				fmt.Sprintf("%s Spending — this %s", cli.ChartIcon, period),
				fmt.Sprintf("Total spent:   %s\nTransactions:  %d\nAvg per day:   %s\nTop category:  %s",
					cli.AmountStyle.Render(snap.TotalSpent.StringFixed(2)),
					snap.TransactionCount,
					snap.AveragePerDay().StringFixed(2),
					snap.TopCategory)))

			if len(snap.Categories) > 0 {
				fmt.Println()
				if err := printCategoryBreakdown(snap.Categories); err != nil {
					return err
				}
			}

			if len(snap.PeriodData) > 0 {
				fmt.Println()
				fmt.Println(cli.HeaderStyle.Render("Daily spend"))
				for _, point := range snap.PeriodData {
					fmt.Printf("  %s  %s\n", point.Date, point.Amount.StringFixed(2))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&periodFlag, "period", "p", string(model.PeriodWeek), "aggregation period (day, week, month)")
	return cmd
}

func printCategoryBreakdown(categories []model.CategorySpend) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\n",
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Amount")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range categories {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.Category, c.Amount.StringFixed(2)); err != nil {
			return fmt.Errorf("failed to write category row: %w", err)
		}
	}
	return nil
}
