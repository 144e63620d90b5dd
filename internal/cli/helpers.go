package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/export"
)

// resolveClient resolves a client by ID or name
func resolveClient(ctx context.Context, idOrName string) (*domain.Client, error) {
	client, err := appInstance.ClientService.Get(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client %q: %w", idOrName, err)
	}
	return client, nil
}

// resolveJob resolves a job by ID, or by the name of an open job
func resolveJob(ctx context.Context, idOrName string) (*domain.Job, error) {
	jobs, err := appInstance.JobService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	for i := range jobs {
		if jobs[i].ID == idOrName {
			return &jobs[i], nil
		}
	}
	for i := range jobs {
		if !jobs[i].Closed && jobs[i].NameMatches(idOrName) {
			return &jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %q not found", idOrName)
}

// parseDate parses a YYYY-MM-DD date in local time
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// parseDateTime parses a YYYY-MM-DD HH:MM timestamp in local time
func parseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD HH:MM)", s)
	}
	return t, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	} else if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func currency(amount float64) string {
	return export.FormatCurrency(amount)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
