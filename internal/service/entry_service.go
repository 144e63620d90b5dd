package service

import (
	"context"
	"errors"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

var (
	ErrEntryNotFound = errors.New("time entry not found")
	ErrEntryInvoiced = errors.New("entry is locked by an invoice")
	ErrEntryOpen     = errors.New("entry is still running")
)

// EntryEdit carries the editable fields of a completed entry
type EntryEdit struct {
	TaskName string
	Notes    string
	Start    time.Time
	End      time.Time
}

// EntryService lists and edits historical time entries
type EntryService interface {
	// List filters entries by client and inclusive date range; zero
	// values disable a filter
	List(ctx context.Context, clientID string, start, end time.Time) ([]domain.TimeEntry, error)

	// Update rewrites a completed, uninvoiced entry. Changing the task
	// name re-resolves the job in the same state update.
	Update(ctx context.Context, id string, edit EntryEdit) error

	// Delete removes an uninvoiced entry
	Delete(ctx context.Context, id string) error
}

type entryService struct {
	store *store.Store
}

// NewEntryService creates a new entry service
func NewEntryService(st *store.Store) EntryService {
	return &entryService{store: st}
}

func (s *entryService) List(ctx context.Context, clientID string, start, end time.Time) ([]domain.TimeEntry, error) {
	state := s.store.State()
	var r *domain.DateRange
	if !start.IsZero() && !end.IsZero() {
		endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
		r = &domain.DateRange{Start: start.UnixMilli(), End: endOfDay.UnixMilli()}
	}

	entries := make([]domain.TimeEntry, 0, len(state.Entries))
	for _, e := range state.Entries {
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		if r != nil && !r.Contains(e.Start) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *entryService) Update(ctx context.Context, id string, edit EntryEdit) error {
	return s.store.Update(func(st *domain.AppState) error {
		entry := st.Entry(id)
		if entry == nil {
			return ErrEntryNotFound
		}
		if entry.Invoiced {
			return ErrEntryInvoiced
		}
		if !entry.Completed() {
			return ErrEntryOpen
		}

		now := time.Now()
		if edit.TaskName != "" && edit.TaskName != entry.TaskName {
			job := resolveJob(st, edit.TaskName, now)
			entry.TaskName = job.Name
			entry.JobID = job.ID
		}
		entry.Notes = edit.Notes
		if !edit.Start.IsZero() {
			entry.Start = edit.Start.UnixMilli()
		}
		if !edit.End.IsZero() {
			ms := edit.End.UnixMilli()
			entry.End = &ms
		}
		return nil
	})
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		for i := range st.Entries {
			if st.Entries[i].ID != id {
				continue
			}
			if st.Entries[i].Invoiced {
				return ErrEntryInvoiced
			}
			if st.Active != nil && st.Active.EntryID == id {
				st.Active = nil
			}
			st.Entries = append(st.Entries[:i], st.Entries[i+1:]...)
			return nil
		}
		return ErrEntryNotFound
	})
}
