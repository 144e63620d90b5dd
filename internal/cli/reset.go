package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cole/shophours/internal/domain"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the state file",
	Long: `Reset data in the state file.

Examples:
  shophours reset entries     # Delete all time entries, invoices, and timer state
  shophours reset invoices    # Delete invoices and unlock entries and charges
  shophours reset all         # Wipe everything`,
}

var resetEntriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Delete all time entries, invoices, and timer state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL time entries, invoices, and timer state. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		err := appInstance.Store.Update(func(st *domain.AppState) error {
			st.Entries = nil
			st.Invoices = nil
			st.Active = nil
			for i := range st.Charges {
				st.Charges[i].Invoiced = false
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to reset entries: %w", err)
		}

		fmt.Println("All time entries, invoices, and timer state have been deleted.")
		return nil
	},
}

var resetInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Delete all invoices and unlock entries and charges",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL invoices and unlock all entries and charges. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		err := appInstance.Store.Update(func(st *domain.AppState) error {
			st.Invoices = nil
			for i := range st.Entries {
				st.Entries[i].Invoiced = false
			}
			for i := range st.Charges {
				st.Charges[i].Invoiced = false
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to reset invoices: %w", err)
		}

		fmt.Println("All invoices have been deleted and entries unlocked.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: clients, entries, jobs, invoices, everything",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (clients, entries, jobs, invoices, everything). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		err := appInstance.Store.Update(func(st *domain.AppState) error {
			*st = *domain.DefaultState()
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetEntriesCmd)
	resetCmd.AddCommand(resetInvoicesCmd)
	resetCmd.AddCommand(resetAllCmd)
}
