package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cole/shophours/internal/service"
	"github.com/spf13/cobra"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage time entries",
	Long:  `List, edit, and delete recorded time entries.`,
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clientID := ""
		if clientArg, _ := cmd.Flags().GetString("client"); clientArg != "" {
			client, err := resolveClient(ctx, clientArg)
			if err != nil {
				return err
			}
			clientID = client.ID
		}

		var start, end time.Time
		if from, _ := cmd.Flags().GetString("from"); from != "" {
			t, err := parseDate(from)
			if err != nil {
				return err
			}
			start = t
		}
		if to, _ := cmd.Flags().GetString("to"); to != "" {
			t, err := parseDate(to)
			if err != nil {
				return err
			}
			end = t
		}

		entries, err := appInstance.EntryService.List(ctx, clientID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries found")
			return nil
		}

		clients, err := appInstance.ClientService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}
		names := make(map[string]string, len(clients))
		for _, c := range clients {
			names[c.ID] = c.Name
		}

		fmt.Printf("%-10s %-12s %-20s %-25s %-10s %-4s\n",
			"ID", "Date", "Client", "Task", "Duration", "Inv")
		fmt.Println("---------------------------------------------------------------------------------------")
		for _, e := range entries {
			duration := "running"
			if e.Completed() {
				duration = formatDuration(e.Duration())
			}
			invoiced := ""
			if e.Invoiced {
				invoiced = "yes"
			}
			fmt.Printf("%-10s %-12s %-20s %-25s %-10s %-4s\n",
				shortID(e.ID),
				e.StartTime().Format("2006-01-02"),
				truncate(names[e.ClientID], 20),
				truncate(e.TaskName, 25),
				duration,
				invoiced,
			)
		}

		fmt.Printf("\nTotal: %d entr%s\n", len(entries), plural(len(entries), "y", "ies"))
		return nil
	},
}

var entriesEditCmd = &cobra.Command{
	Use:   "edit [entry_id]",
	Short: "Edit a completed time entry",
	Long: `Edit a completed, uninvoiced time entry. Changing the task name moves
the entry to the matching open job, creating one if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entries, err := appInstance.EntryService.List(ctx, "", time.Time{}, time.Time{})
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		var edit service.EntryEdit
		found := false
		for _, e := range entries {
			if e.ID == args[0] {
				edit.TaskName = e.TaskName
				edit.Notes = e.Notes
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("entry %q not found", args[0])
		}

		if cmd.Flags().Changed("task") {
			edit.TaskName, _ = cmd.Flags().GetString("task")
		}
		if cmd.Flags().Changed("notes") {
			edit.Notes, _ = cmd.Flags().GetString("notes")
		}
		if s, _ := cmd.Flags().GetString("start"); s != "" {
			t, err := parseDateTime(s)
			if err != nil {
				return err
			}
			edit.Start = t
		}
		if s, _ := cmd.Flags().GetString("end"); s != "" {
			t, err := parseDateTime(s)
			if err != nil {
				return err
			}
			edit.End = t
		}

		if err := appInstance.EntryService.Update(ctx, args[0], edit); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		fmt.Println("✓ Entry updated")
		return nil
	},
}

var entriesRemoveCmd = &cobra.Command{
	Use:   "remove [entry_id]",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.EntryService.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Println("✓ Entry deleted")
		return nil
	},
}

var entriesUnlockCmd = &cobra.Command{
	Use:   "unlock [entry_or_charge_id]",
	Short: "Clear the invoiced flag on an entry or charge",
	Long: `Clear the invoiced flag so the item can be billed again. The invoice
that originally covered it keeps its snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.InvoiceService.UndoInvoiced(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to unlock: %w", err)
		}

		fmt.Println("✓ Invoiced flag cleared")
		return nil
	},
}

func init() {
	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesEditCmd)
	entriesCmd.AddCommand(entriesRemoveCmd)
	entriesCmd.AddCommand(entriesUnlockCmd)

	entriesListCmd.Flags().String("client", "", "Filter by client ID or name")
	entriesListCmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	entriesListCmd.Flags().String("to", "", "End date (YYYY-MM-DD)")

	entriesEditCmd.Flags().String("task", "", "New task name")
	entriesEditCmd.Flags().String("notes", "", "New notes")
	entriesEditCmd.Flags().String("start", "", "New start time (YYYY-MM-DD HH:MM)")
	entriesEditCmd.Flags().String("end", "", "New end time (YYYY-MM-DD HH:MM)")
}
