package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is a named unit of work aggregating entries and charges. Jobs are
// never hard-deleted; closed is the only terminal-ish state and a closed
// job can be reopened.
type Job struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Closed    bool   `json:"closed"`
	ClosedAt  *int64 `json:"closedAt,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// NewJob creates an open job with a trimmed name
func NewJob(name string, createdAt time.Time) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: createdAt.UnixMilli(),
	}
}

// NameMatches reports a case-insensitive name match
func (j *Job) NameMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(j.Name), strings.TrimSpace(name))
}

// Close marks the job closed. Entries and charges keep their jobId.
func (j *Job) Close(at time.Time) {
	if j.Closed {
		return
	}
	ms := at.UnixMilli()
	j.Closed = true
	j.ClosedAt = &ms
}

// Reopen transitions a closed job back to open
func (j *Job) Reopen() {
	j.Closed = false
	j.ClosedAt = nil
}

// Validate returns an error if the job is invalid
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Name) == "" {
		return errors.New("job name is required")
	}
	return nil
}

// Clone returns a deep copy of the job
func (j Job) Clone() Job {
	if j.ClosedAt != nil {
		at := *j.ClosedAt
		j.ClosedAt = &at
	}
	return j
}
