package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cole/shophours/internal/tui"
	"github.com/spf13/cobra"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Manage the active timer",
	Long:  `Start, stop, discard, or watch the active timer. Only one timer runs at a time.`,
}

var timerStartCmd = &cobra.Command{
	Use:   "start [client_id_or_name] [task_or_job]",
	Short: "Start a new timer",
	Long: `Start a new timer for a client against a task or job.

The second argument names the work. If an open job with that name already
exists (case-insensitive), time is added to it; otherwise a new job is
created. Passing an open job's ID also works.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, args[0])
		if err != nil {
			return err
		}

		notes, _ := cmd.Flags().GetString("notes")

		entry, err := appInstance.TimerService.Start(ctx, client.ID, args[1], notes)
		if err != nil {
			return fmt.Errorf("failed to start timer: %w", err)
		}

		fmt.Printf("✓ Timer started for %s\n", client.Name)
		fmt.Printf("  Task: %s\n", entry.TaskName)
		if notes != "" {
			fmt.Printf("  Notes: %s\n", notes)
		}
		return nil
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the active timer and save the time entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entry, err := appInstance.TimerService.Stop(ctx)
		if err != nil {
			return fmt.Errorf("failed to stop timer: %w", err)
		}

		client, _ := appInstance.ClientService.Get(ctx, entry.ClientID)
		clientName := entry.ClientID
		rate := 0.0
		if client != nil {
			clientName = client.Name
			rate = client.Rate
		}

		duration := entry.Duration()
		fmt.Printf("✓ Timer stopped\n")
		fmt.Printf("  Client: %s\n", clientName)
		fmt.Printf("  Task: %s\n", entry.TaskName)
		fmt.Printf("  Duration: %s\n", formatDuration(duration))
		fmt.Printf("  Amount: %s\n", currency(duration.Hours()*rate))
		return nil
	},
}

var timerDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the active timer without saving",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.TimerService.Discard(ctx); err != nil {
			return fmt.Errorf("failed to discard timer: %w", err)
		}

		fmt.Println("✓ Timer discarded")
		return nil
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of the active timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entry, err := appInstance.TimerService.Active(ctx)
		if err != nil {
			return fmt.Errorf("failed to get active timer: %w", err)
		}
		if entry == nil {
			fmt.Println("No active timer")
			return nil
		}

		client, _ := appInstance.ClientService.Get(ctx, entry.ClientID)
		clientName := entry.ClientID
		rate := 0.0
		if client != nil {
			clientName = client.Name
			rate = client.Rate
		}

		elapsed, err := appInstance.TimerService.Elapsed(ctx)
		if err != nil {
			return fmt.Errorf("failed to get elapsed time: %w", err)
		}

		fmt.Println("Timer Status: running")
		fmt.Printf("  Client: %s\n", clientName)
		fmt.Printf("  Task: %s\n", entry.TaskName)
		if entry.Notes != "" {
			fmt.Printf("  Notes: %s\n", entry.Notes)
		}
		fmt.Printf("  Started: %s\n", entry.StartTime().Format("2006-01-02 15:04:05"))
		fmt.Printf("  Elapsed: %s\n", formatDuration(elapsed))
		fmt.Printf("  Current Value: %s\n", currency(elapsed.Hours()*rate))
		return nil
	},
}

var timerWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the active timer live",
	Long:  `Open a full-screen view of the running timer that updates every second.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := tui.NewTimerModel(appInstance)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run timer view: %w", err)
		}
		return nil
	},
}

func init() {
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)
	timerCmd.AddCommand(timerDiscardCmd)
	timerCmd.AddCommand(timerStatusCmd)
	timerCmd.AddCommand(timerWatchCmd)

	timerStartCmd.Flags().String("notes", "", "Notes for this time entry")
}
