package service

import (
	"context"
	"testing"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntries_ListFilters(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	other := seedClient(t, st, "Borealis", 80)
	job := seedJob(t, st, "Brake service")

	march := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	april := time.Date(2026, 4, 10, 9, 0, 0, 0, time.Local)
	inMarch := seedEntry(t, st, client.ID, job.ID, "Brake service", march, 60)
	seedEntry(t, st, client.ID, job.ID, "Brake service", april, 60)
	seedEntry(t, st, other.ID, job.ID, "Brake service", march, 60)

	svc := NewEntryService(st)

	all, err := svc.List(ctx, "", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.List(ctx, client.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	ranged, err := svc.List(ctx, client.ID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, inMarch.ID, ranged[0].ID)
}

func TestEntries_UpdateMovesJob(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Brake service")

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	entry := seedEntry(t, st, client.ID, job.ID, "Brake service", start, 60)

	svc := NewEntryService(st)
	require.NoError(t, svc.Update(ctx, entry.ID, EntryEdit{
		TaskName: "Suspension work",
		Notes:    "swapped struts",
	}))

	state := st.State()
	stored := state.Entry(entry.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Suspension work", stored.TaskName)
	assert.Equal(t, "swapped struts", stored.Notes)
	assert.NotEqual(t, job.ID, stored.JobID)
	require.NotNil(t, state.Job(stored.JobID))
	assert.Equal(t, "Suspension work", state.Job(stored.JobID).Name)
}

func TestEntries_UpdateAdjustsTimes(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Brake service")

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	entry := seedEntry(t, st, client.ID, job.ID, "Brake service", start, 60)

	newStart := start.Add(-30 * time.Minute)
	newEnd := start.Add(90 * time.Minute)
	require.NoError(t, NewEntryService(st).Update(ctx, entry.ID, EntryEdit{
		TaskName: "Brake service",
		Start:    newStart,
		End:      newEnd,
	}))

	stored := st.State().Entry(entry.ID)
	require.NotNil(t, stored)
	assert.Equal(t, newStart.UnixMilli(), stored.Start)
	require.NotNil(t, stored.End)
	assert.Equal(t, newEnd.UnixMilli(), *stored.End)
	assert.Equal(t, 2*time.Hour, stored.Duration())
}

func TestEntries_UpdateGates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Brake service")

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	entry := seedEntry(t, st, client.ID, job.ID, "Brake service", start, 60)

	svc := NewEntryService(st)
	assert.ErrorIs(t, svc.Update(ctx, "ghost", EntryEdit{}), ErrEntryNotFound)

	require.NoError(t, st.Update(func(s *domain.AppState) error {
		s.Entry(entry.ID).Invoiced = true
		return nil
	}))
	assert.ErrorIs(t, svc.Update(ctx, entry.ID, EntryEdit{}), ErrEntryInvoiced)
	assert.ErrorIs(t, svc.Delete(ctx, entry.ID), ErrEntryInvoiced)

	// An open entry cannot be edited either
	open, err := NewTimerService(st).Start(ctx, client.ID, "Oil change", "")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Update(ctx, open.ID, EntryEdit{}), ErrEntryOpen)
}

func TestEntries_DeleteClearsActive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)

	open, err := NewTimerService(st).Start(ctx, client.ID, "Oil change", "")
	require.NoError(t, err)

	require.NoError(t, NewEntryService(st).Delete(ctx, open.ID))
	state := st.State()
	assert.Empty(t, state.Entries)
	assert.Nil(t, state.Active)
}
