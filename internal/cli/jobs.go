package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
	Long:  `List jobs, close or reopen them, and show per-job totals.`,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, open first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		openOnly, _ := cmd.Flags().GetBool("open")

		jobs, err := appInstance.JobService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}

		if len(jobs) == 0 {
			fmt.Println("No jobs found")
			return nil
		}

		fmt.Printf("%-10s %-35s %-8s %-10s %-12s\n", "ID", "Name", "Status", "Hours", "Total")
		fmt.Println("-------------------------------------------------------------------------------")
		shown := 0
		for _, job := range jobs {
			if openOnly && job.Closed {
				continue
			}
			status := "open"
			if job.Closed {
				status = "closed"
			}
			totals, err := appInstance.JobService.Totals(ctx, job.ID)
			if err != nil {
				return fmt.Errorf("failed to total job %s: %w", job.Name, err)
			}
			fmt.Printf("%-10s %-35s %-8s %-10.2f %-12s\n",
				shortID(job.ID),
				truncate(job.Name, 35),
				status,
				totals.Hours,
				currency(totals.Total()),
			)
			shown++
		}

		fmt.Printf("\nTotal: %d job(s)\n", shown)
		return nil
	},
}

var jobsCloseCmd = &cobra.Command{
	Use:   "close [id_or_name]",
	Short: "Close a job",
	Long: `Close a job so no new time lands on it. Starting a timer with the
same name afterwards creates a fresh job.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job, err := resolveJob(ctx, args[0])
		if err != nil {
			return err
		}

		if err := appInstance.JobService.Close(ctx, job.ID); err != nil {
			return fmt.Errorf("failed to close job: %w", err)
		}

		fmt.Printf("✓ Job closed: %s\n", job.Name)
		return nil
	},
}

var jobsReopenCmd = &cobra.Command{
	Use:   "reopen [id]",
	Short: "Reopen a closed job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job, err := resolveJob(ctx, args[0])
		if err != nil {
			return err
		}

		if err := appInstance.JobService.Reopen(ctx, job.ID); err != nil {
			return fmt.Errorf("failed to reopen job: %w", err)
		}

		fmt.Printf("✓ Job reopened: %s\n", job.Name)
		return nil
	},
}

var jobsTotalsCmd = &cobra.Command{
	Use:   "totals [id_or_name]",
	Short: "Show labor and charge totals for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job, err := resolveJob(ctx, args[0])
		if err != nil {
			return err
		}

		totals, err := appInstance.JobService.Totals(ctx, job.ID)
		if err != nil {
			return fmt.Errorf("failed to total job: %w", err)
		}

		fmt.Printf("Job: %s\n", job.Name)
		fmt.Printf("  Hours:   %.2f\n", totals.Hours)
		fmt.Printf("  Labor:   %s\n", currency(totals.LaborAmount))
		fmt.Printf("  Charges: %s\n", currency(totals.ChargeAmount))
		fmt.Printf("  Total:   %s\n", currency(totals.Total()))
		return nil
	},
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsCloseCmd)
	jobsCmd.AddCommand(jobsReopenCmd)
	jobsCmd.AddCommand(jobsTotalsCmd)

	jobsListCmd.Flags().Bool("open", false, "Only show open jobs")
}
