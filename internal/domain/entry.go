package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TimeEntry is a span of billable work for one client and one job.
// Timestamps are millisecond epoch values, matching the persisted blob.
type TimeEntry struct {
	ID             string `json:"id"`
	ClientID       string `json:"clientId"`
	TaskName       string `json:"taskName"`
	JobID          string `json:"jobId"`
	Start          int64  `json:"start"`
	End            *int64 `json:"end"` // nil while the timer is running
	Notes          string `json:"notes"`
	Invoiced       bool   `json:"invoiced"`
	ScheduledJobID string `json:"scheduledJobId,omitempty"`
}

// NewTimeEntry creates an open entry starting at the given time
func NewTimeEntry(clientID, taskName, jobID, notes string, start time.Time) *TimeEntry {
	return &TimeEntry{
		ID:       uuid.NewString(),
		ClientID: clientID,
		TaskName: taskName,
		JobID:    jobID,
		Start:    start.UnixMilli(),
		Notes:    notes,
	}
}

// Completed reports whether the entry has been stopped
func (e *TimeEntry) Completed() bool {
	return e.End != nil
}

// Stop sets the end time. It does nothing on an already-completed entry.
func (e *TimeEntry) Stop(end time.Time) {
	if e.End != nil {
		return
	}
	ms := end.UnixMilli()
	e.End = &ms
}

// DurationMillis returns end-start, or 0 for an open entry
func (e *TimeEntry) DurationMillis() int64 {
	if e.End == nil {
		return 0
	}
	return *e.End - e.Start
}

// Duration returns the completed span as a time.Duration
func (e *TimeEntry) Duration() time.Duration {
	return time.Duration(e.DurationMillis()) * time.Millisecond
}

// StartTime returns the start as a time.Time
func (e *TimeEntry) StartTime() time.Time {
	return time.UnixMilli(e.Start)
}

// EndTime returns the end time and whether the entry is completed
func (e *TimeEntry) EndTime() (time.Time, bool) {
	if e.End == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*e.End), true
}

// Validate returns an error if the entry is invalid
func (e *TimeEntry) Validate() error {
	if e.ClientID == "" {
		return errors.New("client ID is required")
	}
	if e.Start == 0 {
		return errors.New("start time is required")
	}
	return nil
}

// Clone returns a deep copy of the entry
func (e TimeEntry) Clone() TimeEntry {
	if e.End != nil {
		end := *e.End
		e.End = &end
	}
	return e
}
