package cli

import (
	"context"
	"fmt"

	"github.com/cole/shophours/internal/service"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage scheduled jobs",
	Long:  `Plan upcoming work and start timers straight from the schedule.`,
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add [client_id_or_name] [task]",
	Short: "Schedule a job for a client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, args[0])
		if err != nil {
			return err
		}

		date, _ := cmd.Flags().GetString("date")
		at, _ := cmd.Flags().GetString("time")
		hours, _ := cmd.Flags().GetFloat64("hours")
		notes, _ := cmd.Flags().GetString("notes")

		jobID := ""
		if jobArg, _ := cmd.Flags().GetString("job"); jobArg != "" {
			job, err := resolveJob(ctx, jobArg)
			if err != nil {
				return err
			}
			jobID = job.ID
		}

		sched, err := appInstance.ScheduleService.Add(ctx, service.ScheduleParams{
			ClientID:       client.ID,
			TaskName:       args[1],
			JobID:          jobID,
			Date:           date,
			Time:           at,
			EstimatedHours: hours,
			Notes:          notes,
		})
		if err != nil {
			return fmt.Errorf("failed to schedule job: %w", err)
		}

		fmt.Printf("✓ Scheduled %s for %s", sched.TaskName, client.Name)
		if sched.ScheduledDate != "" {
			fmt.Printf(" on %s", sched.ScheduledDate)
			if sched.ScheduledTime != "" {
				fmt.Printf(" at %s", sched.ScheduledTime)
			}
		}
		fmt.Println()
		return nil
	},
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		all, _ := cmd.Flags().GetBool("all")

		scheds, err := appInstance.ScheduleService.List(ctx, all)
		if err != nil {
			return fmt.Errorf("failed to list schedule: %w", err)
		}

		if len(scheds) == 0 {
			fmt.Println("Nothing scheduled")
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

		fmt.Printf("%-10s %-12s %-6s %-20s %-25s %-6s %-5s\n",
			"ID", "Date", "Time", "Client", "Task", "Est.", "Done")
		fmt.Println("---------------------------------------------------------------------------------------")
		for _, s := range scheds {
			done := ""
			if s.Completed {
				done = "yes"
			}
			est := ""
			if s.EstimatedHours > 0 {
				est = fmt.Sprintf("%.1fh", s.EstimatedHours)
			}
			fmt.Printf("%-10s %-12s %-6s %-20s %-25s %-6s %-5s\n",
				shortID(s.ID),
				s.ScheduledDate,
				s.ScheduledTime,
				truncate(names[s.ClientID], 20),
				truncate(s.TaskName, 25),
				est,
				done,
			)
		}
		return nil
	},
}

var scheduleStartCmd = &cobra.Command{
	Use:   "start [scheduled_job_id]",
	Short: "Start a timer from a scheduled job",
	Long:  `Start the timer with the scheduled job's client and task, and mark the scheduled job done.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entry, err := appInstance.TimerService.StartFromSchedule(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to start timer: %w", err)
		}

		fmt.Printf("✓ Timer started: %s\n", entry.TaskName)
		return nil
	},
}

var scheduleDoneCmd = &cobra.Command{
	Use:   "done [scheduled_job_id]",
	Short: "Mark a scheduled job completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.ScheduleService.MarkDone(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to mark done: %w", err)
		}

		fmt.Println("✓ Scheduled job completed")
		return nil
	},
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove [scheduled_job_id]",
	Short: "Remove a scheduled job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.ScheduleService.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove scheduled job: %w", err)
		}

		fmt.Println("✓ Scheduled job removed")
		return nil
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleStartCmd)
	scheduleCmd.AddCommand(scheduleDoneCmd)
	scheduleCmd.AddCommand(scheduleRemoveCmd)

	scheduleAddCmd.Flags().String("date", "", "Scheduled date (YYYY-MM-DD)")
	scheduleAddCmd.Flags().String("time", "", "Scheduled time (HH:MM)")
	scheduleAddCmd.Flags().Float64("hours", 0, "Estimated hours")
	scheduleAddCmd.Flags().String("notes", "", "Notes")
	scheduleAddCmd.Flags().String("job", "", "Attach to an existing job")

	scheduleListCmd.Flags().Bool("all", false, "Include completed scheduled jobs")
}
