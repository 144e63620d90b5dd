package service

import (
	"context"
	"time"

	"github.com/cole/shophours/internal/billing"
	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

// ClientSummary is a read-only billing projection for one client over a
// range. Unbilled figures count only uninvoiced completed entries.
type ClientSummary struct {
	ClientID       string
	TotalHours     float64
	TotalAmount    float64
	UnbilledHours  float64
	UnbilledAmount float64
	Entries        []domain.TimeEntry
}

// QuickStats is the dashboard headline figure set
type QuickStats struct {
	Clients          int
	CompletedEntries int
	TotalHours       float64
	OpenJobs         int
	UnbilledAmount   float64
}

// ReportService computes aggregations over the current state
type ReportService interface {
	// ClientSummary aggregates a client's completed entries; zero start
	// and end bounds disable the range filter
	ClientSummary(ctx context.Context, clientID string, start, end time.Time) (*ClientSummary, error)
	JobTotals(ctx context.Context, jobID string) (billing.JobTotals, error)
	Stats(ctx context.Context) (*QuickStats, error)
}

type reportService struct {
	store *store.Store
}

// NewReportService creates a new report service
func NewReportService(st *store.Store) ReportService {
	return &reportService{store: st}
}

func (s *reportService) ClientSummary(ctx context.Context, clientID string, start, end time.Time) (*ClientSummary, error) {
	state := s.store.State()
	client := state.Client(clientID)
	if client == nil {
		return nil, ErrClientNotFound
	}

	var dateRange *domain.DateRange
	if !start.IsZero() && !end.IsZero() {
		r := billing.NormalizeRange(start, end)
		dateRange = &r
	}
	summary := &ClientSummary{ClientID: clientID}
	for _, e := range state.Entries {
		if e.ClientID != clientID || !e.Completed() {
			continue
		}
		if dateRange != nil && !dateRange.Contains(e.Start) {
			continue
		}
		hours := billing.Hours(&e)
		amount := hours * client.Rate
		summary.TotalHours += hours
		summary.TotalAmount += amount
		if !e.Invoiced {
			summary.UnbilledHours += hours
			summary.UnbilledAmount += amount
		}
		summary.Entries = append(summary.Entries, e)
	}
	return summary, nil
}

func (s *reportService) JobTotals(ctx context.Context, jobID string) (billing.JobTotals, error) {
	state := s.store.State()
	if state.Job(jobID) == nil {
		return billing.JobTotals{}, ErrJobNotFound
	}
	return billing.ForJob(jobID, state.Entries, state.Charges, state.Clients), nil
}

func (s *reportService) Stats(ctx context.Context) (*QuickStats, error) {
	state := s.store.State()
	stats := &QuickStats{Clients: len(state.Clients)}

	completed := billing.Completed(state.Entries)
	stats.CompletedEntries = len(completed)
	stats.TotalHours = billing.TotalHours(completed)
	stats.OpenJobs = len(state.OpenJobs())

	byID := make(map[string]*domain.Client, len(state.Clients))
	for i := range state.Clients {
		byID[state.Clients[i].ID] = &state.Clients[i]
	}
	for i := range completed {
		e := &completed[i]
		if !e.Invoiced {
			stats.UnbilledAmount += billing.Amount(e, byID[e.ClientID])
		}
	}
	for _, c := range state.Charges {
		if !c.Invoiced {
			stats.UnbilledAmount += c.AmountCached
		}
	}
	return stats, nil
}
