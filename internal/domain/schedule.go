package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ScheduledJob is upcoming work on the calendar. Starting it produces a
// new TimeEntry with clientId, taskName, jobId and notes carried over,
// and flips the scheduled job to completed.
type ScheduledJob struct {
	ID             string  `json:"id"`
	ClientID       string  `json:"clientId"`
	TaskName       string  `json:"taskName"`
	JobID          string  `json:"jobId,omitempty"`
	ScheduledDate  string  `json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime  string  `json:"scheduledTime"` // HH:MM
	EstimatedHours float64 `json:"estimatedHours"`
	Notes          string  `json:"notes"`
	Completed      bool    `json:"completed"`
}

// NewScheduledJob creates a pending scheduled job
func NewScheduledJob(clientID, taskName, date, timeOfDay string, estimatedHours float64, notes string) *ScheduledJob {
	return &ScheduledJob{
		ID:             uuid.NewString(),
		ClientID:       clientID,
		TaskName:       taskName,
		ScheduledDate:  date,
		ScheduledTime:  timeOfDay,
		EstimatedHours: estimatedHours,
		Notes:          notes,
	}
}

// Validate returns an error if the scheduled job is invalid
func (s *ScheduledJob) Validate() error {
	if s.ClientID == "" {
		return errors.New("client ID is required")
	}
	if s.TaskName == "" {
		return errors.New("task name is required")
	}
	if s.ScheduledDate == "" {
		return errors.New("scheduled date is required")
	}
	return nil
}
