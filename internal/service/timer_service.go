package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

var (
	ErrTimerRunning      = errors.New("a timer is already running")
	ErrNoActiveTimer     = errors.New("no active timer")
	ErrScheduleNotFound  = errors.New("scheduled job not found")
	ErrScheduleCompleted = errors.New("scheduled job is already completed")
)

// TimerService manages the single open time entry and the active pointer.
// At most one entry may be open; the pointer always references it.
type TimerService interface {
	// Start opens a new entry. taskOrJobID may be the id of an open job
	// or a free-text task name, which resolves to an existing-or-new job
	// in the same state update as the entry.
	Start(ctx context.Context, clientID, taskOrJobID, notes string) (*domain.TimeEntry, error)

	// StartFromSchedule opens an entry from a scheduled job, carrying
	// over its fields, and marks the scheduled job completed
	StartFromSchedule(ctx context.Context, scheduledJobID string) (*domain.TimeEntry, error)

	// Stop closes the open entry and clears the active pointer
	Stop(ctx context.Context) (*domain.TimeEntry, error)

	// Discard deletes the open entry without saving it
	Discard(ctx context.Context) error

	// Active returns the open entry, or nil when idle. An app restart
	// simply re-attaches here; there is no timeout-based auto-stop.
	Active(ctx context.Context) (*domain.TimeEntry, error)

	// Elapsed returns the running time of the open entry
	Elapsed(ctx context.Context) (time.Duration, error)
}

type timerService struct {
	store *store.Store
}

// NewTimerService creates a new timer service
func NewTimerService(st *store.Store) TimerService {
	return &timerService{store: st}
}

func (s *timerService) Start(ctx context.Context, clientID, taskOrJobID, notes string) (*domain.TimeEntry, error) {
	if strings.TrimSpace(taskOrJobID) == "" {
		return nil, ErrEmptyName
	}
	var started domain.TimeEntry
	err := s.store.Update(func(st *domain.AppState) error {
		if st.Client(clientID) == nil {
			return ErrClientNotFound
		}
		if st.Active != nil {
			return ErrTimerRunning
		}

		now := time.Now()
		// An open job id wins over name resolution; a closed job's id is
		// treated as a task name so closed jobs are never reused.
		var job *domain.Job
		if j := st.Job(taskOrJobID); j != nil && !j.Closed {
			job = j
		} else {
			job = resolveJob(st, taskOrJobID, now)
		}

		entry := domain.NewTimeEntry(clientID, job.Name, job.ID, notes, now)
		st.Entries = append(st.Entries, *entry)
		st.Active = &domain.ActiveRef{EntryID: entry.ID}
		started = entry.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &started, nil
}

func (s *timerService) StartFromSchedule(ctx context.Context, scheduledJobID string) (*domain.TimeEntry, error) {
	var started domain.TimeEntry
	err := s.store.Update(func(st *domain.AppState) error {
		sched := st.Scheduled(scheduledJobID)
		if sched == nil {
			return ErrScheduleNotFound
		}
		if sched.Completed {
			return ErrScheduleCompleted
		}
		if st.Client(sched.ClientID) == nil {
			return ErrClientNotFound
		}
		if st.Active != nil {
			return ErrTimerRunning
		}

		now := time.Now()
		jobID := sched.JobID
		if jobID == "" || st.Job(jobID) == nil {
			jobID = resolveJob(st, sched.TaskName, now).ID
		}

		entry := domain.NewTimeEntry(sched.ClientID, sched.TaskName, jobID, sched.Notes, now)
		entry.ScheduledJobID = sched.ID
		st.Entries = append(st.Entries, *entry)
		st.Active = &domain.ActiveRef{EntryID: entry.ID}
		sched.Completed = true
		started = entry.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &started, nil
}

func (s *timerService) Stop(ctx context.Context) (*domain.TimeEntry, error) {
	var stopped domain.TimeEntry
	err := s.store.Update(func(st *domain.AppState) error {
		entry := st.ActiveEntry()
		if entry == nil {
			st.Active = nil
			return ErrNoActiveTimer
		}
		entry.Stop(time.Now())
		st.Active = nil
		stopped = entry.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stopped, nil
}

func (s *timerService) Discard(ctx context.Context) error {
	return s.store.Update(func(st *domain.AppState) error {
		if st.Active == nil {
			return ErrNoActiveTimer
		}
		id := st.Active.EntryID
		for i := range st.Entries {
			if st.Entries[i].ID == id {
				st.Entries = append(st.Entries[:i], st.Entries[i+1:]...)
				break
			}
		}
		st.Active = nil
		return nil
	})
}

func (s *timerService) Active(ctx context.Context) (*domain.TimeEntry, error) {
	state := s.store.State()
	return state.ActiveEntry(), nil
}

func (s *timerService) Elapsed(ctx context.Context) (time.Duration, error) {
	entry, err := s.Active(ctx)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, ErrNoActiveTimer
	}
	return time.Since(entry.StartTime()), nil
}
