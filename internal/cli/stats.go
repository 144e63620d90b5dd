package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cole/shophours/internal/billing"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		stats, err := appInstance.ReportService.Stats(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Println("Shop Hours")
		fmt.Printf("  Clients:           %d\n", stats.Clients)
		fmt.Printf("  Completed entries: %d\n", stats.CompletedEntries)
		fmt.Printf("  Total hours:       %.2f\n", stats.TotalHours)
		fmt.Printf("  Open jobs:         %d\n", stats.OpenJobs)
		fmt.Printf("  Unbilled:          %s\n", currency(stats.UnbilledAmount))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [client_id_or_name]",
	Short: "Show a billing summary for a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, args[0])
		if err != nil {
			return err
		}

		now := time.Now()
		var start, end time.Time
		period, _ := cmd.Flags().GetString("period")
		switch period {
		case "week":
			start, end = billing.ThisWeek(now)
		case "month":
			start, end = billing.ThisMonth(now)
		case "last-month":
			start, end = billing.LastMonth(now)
		case "all":
			// zero bounds cover everything
		default:
			return fmt.Errorf("unknown period %q (expected week, month, last-month or all)", period)
		}

		summary, err := appInstance.ReportService.ClientSummary(ctx, client.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to summarize: %w", err)
		}

		fmt.Printf("Summary for %s (%s)\n", client.Name, period)
		fmt.Printf("  Entries:  %d\n", len(summary.Entries))
		fmt.Printf("  Hours:    %.2f\n", summary.TotalHours)
		fmt.Printf("  Billed:   %s\n", currency(summary.TotalAmount-summary.UnbilledAmount))
		fmt.Printf("  Unbilled: %s (%.2f hours)\n", currency(summary.UnbilledAmount), summary.UnbilledHours)
		return nil
	},
}

func init() {
	summaryCmd.Flags().String("period", "month", "Period: week, month, last-month or all")
}
