// Package billing holds the pure arithmetic over entries, charges and
// client rates. Nothing here knows about invoicing state: filtering on
// the invoiced flag is the draft engine's responsibility.
package billing

import (
	"github.com/cole/shophours/internal/domain"
)

const millisPerHour = 3600000

// Hours converts a completed entry's span to decimal hours. Callers must
// filter to completed entries first; an open entry yields 0.
func Hours(e *domain.TimeEntry) float64 {
	if !e.Completed() {
		return 0
	}
	return float64(e.DurationMillis()) / millisPerHour
}

// Amount is the billable value of an entry at the client's hourly rate
func Amount(e *domain.TimeEntry, c *domain.Client) float64 {
	if c == nil {
		return 0
	}
	return Hours(e) * c.Rate
}

// TotalHours sums hours over completed entries; 0 for empty input
func TotalHours(entries []domain.TimeEntry) float64 {
	var total float64
	for i := range entries {
		total += Hours(&entries[i])
	}
	return total
}

// TotalAmount sums billable value over completed entries. An entry with
// no matching client contributes 0 to the amount but still counts toward
// hours in TotalHours.
func TotalAmount(entries []domain.TimeEntry, clients []domain.Client) float64 {
	byID := make(map[string]*domain.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}
	var total float64
	for i := range entries {
		total += Amount(&entries[i], byID[entries[i].ClientID])
	}
	return total
}

// Completed filters to entries with an end time
func Completed(entries []domain.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Completed() {
			out = append(out, e)
		}
	}
	return out
}

// InRange filters to entries whose start falls inside the range
func InRange(entries []domain.TimeEntry, r domain.DateRange) []domain.TimeEntry {
	out := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Start) {
			out = append(out, e)
		}
	}
	return out
}

// JobTotals is the live figure for a job, independent of invoiced state
type JobTotals struct {
	Hours        float64
	LaborAmount  float64
	ChargeAmount float64
}

// Total is labor plus charges
func (t JobTotals) Total() float64 {
	return t.LaborAmount + t.ChargeAmount
}

// ForJob aggregates completed entries and all charges with a matching
// jobId. Invoiced records still count: this is a job total, not an
// invoice figure.
func ForJob(jobID string, entries []domain.TimeEntry, charges []domain.Charge, clients []domain.Client) JobTotals {
	byID := make(map[string]*domain.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}

	var totals JobTotals
	for i := range entries {
		e := &entries[i]
		if e.JobID != jobID || !e.Completed() {
			continue
		}
		totals.Hours += Hours(e)
		totals.LaborAmount += Amount(e, byID[e.ClientID])
	}
	for i := range charges {
		if charges[i].JobID == jobID {
			totals.ChargeAmount += charges[i].AmountCached
		}
	}
	return totals
}
