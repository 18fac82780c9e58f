package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pursecli/purse/internal/cli"
	"github.com/pursecli/purse/internal/history"
	"github.com/pursecli/purse/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var (
		page       int
		size       int
		txType     string
		txStatus   string
		category   string
		search     string
		from       string
		to         string
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse your transaction history",
		Long: `Display filtered, paginated transaction history. With --export, every
page matching the filter is walked and written to a CSV file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := buildHistoryFilter(txType, txStatus, category, search, from, to)
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

			query := history.NewQuery(a.client, a.sess.WalletID, size)
			query.SetFilter(*filter)

			if exportPath != "" {
				return exportHistory(cmd, query, exportPath)
			}

			query.SetPage(page)
			result, err := query.Fetch(ctx)
			if err != nil {
				return err
			}

			if len(result.Items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions match this filter."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Transaction History"))
			fmt.Println()
			if err := printTransactionTable(result.Items); err != nil {
				return err
			}
			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf(
				"Page %d of %d (%d transactions)",
				result.Number+1, result.TotalPages(), result.TotalCount)))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "0-based page number")
	cmd.Flags().IntVar(&size, "size", history.DefaultPageSize, "page size")
	cmd.Flags().StringVar(&txType, "type", "", "filter by type (ADD_MONEY, SEND_MONEY)")
	cmd.Flags().StringVar(&txStatus, "status", "", "filter by status (PENDING, SUCCESS, FAILED)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&exportPath, "export", "", "write all matching transactions to a CSV file")
	return cmd
}

func buildHistoryFilter(txType, txStatus, category, search, from, to string) (*history.Filter, error) {
	var filter history.Filter

	if txType != "" {
		t := model.TransactionType(strings.ToUpper(txType))
		if t != model.TypeAddMoney && t != model.TypeSendMoney {
			return nil, fmt.Errorf("unknown type %q (valid: ADD_MONEY, SEND_MONEY)", txType)
		}
		filter.Type = &t
	}
	if txStatus != "" {
		s := model.TransactionStatus(strings.ToUpper(txStatus))
		if s != model.StatusPending && s != model.StatusSuccess && s != model.StatusFailed {
			return nil, fmt.Errorf("unknown status %q (valid: PENDING, SUCCESS, FAILED)", txStatus)
		}
		filter.Status = &s
	}
	if category != "" {
		c, err := model.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		filter.Category = &c
	}
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date: %w", err)
		}
		filter.DateFrom = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date: %w", err)
		}
		filter.DateTo = &t
	}
	filter.Search = search
	return &filter, nil
}

func printTransactionTable(items []model.Transaction) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Type"),
		cli.HeaderStyle.Render("Amount"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Status"),
		cli.HeaderStyle.Render("Purpose")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, tx := range items {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.CreatedAt.Format("2006-01-02 15:04"),
			tx.Type,
			tx.Amount.StringFixed(2),
			tx.Category,
			formatStatus(tx.Status),
			tx.Purpose); err != nil {
			return fmt.Errorf("failed to write transaction row: %w", err)
		}
	}
	return nil
}

func formatStatus(status model.TransactionStatus) string {
	switch status {
	case model.StatusSuccess:
		return cli.SuccessStyle.Render(string(status))
	case model.StatusFailed:
		return cli.ErrorStyle.Render(string(status))
	default:
		return cli.WarningStyle.Render(string(status))
	}
}

func exportHistory(cmd *cobra.Command, query *history.Query, path string) error {
	ctx := cmd.Context()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close export file", "error", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "date", "type", "amount", "sender", "receiver", "category", "purpose", "status"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	var (
		bar   *progressbar.ProgressBar
		total int64
	)
	err = query.FetchAll(ctx, func(page *history.Page) error {
		if bar == nil {
			bar = progressbar.Default(page.TotalCount, "exporting")
		}
		for _, tx := range page.Items {
			record := []string{
				fmt.Sprintf("%d", tx.ID),
				tx.CreatedAt.Format(time.RFC3339),
				string(tx.Type),
				tx.Amount.String(),
				tx.SenderRef,
				tx.ReceiverRef,
				string(tx.Category),
				tx.Purpose,
				string(tx.Status),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		total += int64(len(page.Items))
		return bar.Add(len(page.Items))
	})
	if err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", total, path)))
	return nil
}
