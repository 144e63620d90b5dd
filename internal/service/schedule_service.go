package service

import (
	"context"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

// ScheduleParams describes a new scheduled job
type ScheduleParams struct {
	ClientID       string
	TaskName       string
	JobID          string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	EstimatedHours float64
	Notes          string
}

// ScheduleService manages upcoming scheduled jobs. The timer service
// consumes them via StartFromSchedule.
type ScheduleService interface {
	Add(ctx context.Context, p ScheduleParams) (*domain.ScheduledJob, error)
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, includeCompleted bool) ([]domain.ScheduledJob, error)
}

type scheduleService struct {
	store *store.Store
}

// NewScheduleService creates a new schedule service
func NewScheduleService(st *store.Store) ScheduleService {
	return &scheduleService{store: st}
}

func (s *scheduleService) Add(ctx context.Context, p ScheduleParams) (*domain.ScheduledJob, error) {
	sched := domain.NewScheduledJob(p.ClientID, p.TaskName, p.Date, p.Time, p.EstimatedHours, p.Notes)
	sched.JobID = p.JobID
	if err := sched.Validate(); err != nil {
		return nil, err
	}
	err := s.store.Update(func(st *domain.AppState) error {
		if st.Client(p.ClientID) == nil {
			return ErrClientNotFound
		}
		st.ScheduledJobs = append(st.ScheduledJobs, *sched)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *scheduleService) MarkDone(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		sched := st.Scheduled(id)
		if sched == nil {
			return ErrScheduleNotFound
		}
		sched.Completed = true
		return nil
	})
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		for i := range st.ScheduledJobs {
			if st.ScheduledJobs[i].ID == id {
				st.ScheduledJobs = append(st.ScheduledJobs[:i], st.ScheduledJobs[i+1:]...)
				return nil
			}
		}
		return ErrScheduleNotFound
	})
}

func (s *scheduleService) List(ctx context.Context, includeCompleted bool) ([]domain.ScheduledJob, error) {
	state := s.store.State()
	scheduled := make([]domain.ScheduledJob, 0, len(state.ScheduledJobs))
	for _, sj := range state.ScheduledJobs {
		if !includeCompleted && sj.Completed {
			continue
		}
		scheduled = append(scheduled, sj)
	}
	return scheduled, nil
}
