package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cole/shophours/internal/billing"
	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobClosed   = errors.New("job is closed")
	ErrEmptyName   = errors.New("job name is required")
)

func newID() string { return uuid.NewString() }

// resolveJob finds an open job whose name matches case-insensitively, or
// creates one and appends it to the state. Closed jobs never match, so a
// new job can reclaim a previously-closed job's name.
func resolveJob(st *domain.AppState, name string, now time.Time) *domain.Job {
	for i := range st.Jobs {
		j := &st.Jobs[i]
		if !j.Closed && j.NameMatches(name) {
			return j
		}
	}
	job := domain.NewJob(name, now)
	st.Jobs = append(st.Jobs, *job)
	return &st.Jobs[len(st.Jobs)-1]
}

// JobService resolves free-text task names to jobs and manages the
// open/closed lifecycle
type JobService interface {
	// Resolve returns the open job matching the name, creating it if no
	// match exists
	Resolve(ctx context.Context, name string) (*domain.Job, error)

	// Close marks a job closed; entries and charges keep their jobId
	Close(ctx context.Context, jobID string) error

	// Reopen transitions a closed job back to open
	Reopen(ctx context.Context, jobID string) error

	// List returns all jobs, open first
	List(ctx context.Context) ([]domain.Job, error)

	// Open returns only open jobs, the pick-list set
	Open(ctx context.Context) ([]domain.Job, error)

	// Totals returns the live hour/amount figure for a job
	Totals(ctx context.Context, jobID string) (billing.JobTotals, error)

	// Backfill links entries that carry a task name but a missing or
	// dangling jobId, creating jobs as needed. Idempotent.
	Backfill(ctx context.Context) (int, error)
}

type jobService struct {
	store *store.Store
}

// NewJobService creates a new job service
func NewJobService(st *store.Store) JobService {
	return &jobService{store: st}
}

func (s *jobService) Resolve(ctx context.Context, name string) (*domain.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	var resolved domain.Job
	err := s.store.Update(func(st *domain.AppState) error {
		resolved = resolveJob(st, name, time.Now()).Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

func (s *jobService) Close(ctx context.Context, jobID string) error {
	return s.store.Update(func(st *domain.AppState) error {
		job := st.Job(jobID)
		if job == nil {
			return ErrJobNotFound
		}
		job.Close(time.Now())
		return nil
	})
}

func (s *jobService) Reopen(ctx context.Context, jobID string) error {
	return s.store.Update(func(st *domain.AppState) error {
		job := st.Job(jobID)
		if job == nil {
			return ErrJobNotFound
		}
		job.Reopen()
		return nil
	})
}

func (s *jobService) List(ctx context.Context) ([]domain.Job, error) {
	state := s.store.State()
	jobs := make([]domain.Job, 0, len(state.Jobs))
	for _, j := range state.Jobs {
		if !j.Closed {
			jobs = append(jobs, j)
		}
	}
	for _, j := range state.Jobs {
		if j.Closed {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (s *jobService) Open(ctx context.Context) ([]domain.Job, error) {
	return s.store.State().OpenJobs(), nil
}

func (s *jobService) Totals(ctx context.Context, jobID string) (billing.JobTotals, error) {
	state := s.store.State()
	if state.Job(jobID) == nil {
		return billing.JobTotals{}, ErrJobNotFound
	}
	return billing.ForJob(jobID, state.Entries, state.Charges, state.Clients), nil
}

func (s *jobService) Backfill(ctx context.Context) (int, error) {
	linked := 0
	err := s.store.Update(func(st *domain.AppState) error {
		now := time.Now()
		for i := range st.Entries {
			e := &st.Entries[i]
			if strings.TrimSpace(e.TaskName) == "" {
				continue
			}
			if e.JobID != "" && st.Job(e.JobID) != nil {
				continue
			}
			e.JobID = resolveJob(st, e.TaskName, now).ID
			linked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return linked, nil
}
