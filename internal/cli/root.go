package cli

import (
	"github.com/cole/shophours/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "shophours",
	Short: "Time tracking and invoicing for a small service shop",
	Long: `Shophours tracks billable hours and parts against clients and jobs,
and turns them into invoices with CSV, HTML and PDF export.

All data lives in a single local state file; there is no server.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(chargesCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
}
