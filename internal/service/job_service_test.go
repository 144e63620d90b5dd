package service

import (
	"context"
	"testing"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobs_ResolveCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewJobService(newTestStore(t))

	first, err := svc.Resolve(ctx, "Brake Service")
	require.NoError(t, err)

	second, err := svc.Resolve(ctx, "brake service")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Brake Service", second.Name)

	_, err = svc.Resolve(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestJobs_CloseReopen(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewJobService(st)

	job, err := svc.Resolve(ctx, "Detailing")
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, job.ID))
	stored := st.State().Job(job.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.Closed)
	require.NotNil(t, stored.ClosedAt)

	// Closing again keeps the original timestamp
	closedAt := *stored.ClosedAt
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.Close(ctx, job.ID))
	require.NotNil(t, st.State().Job(job.ID).ClosedAt)
	assert.Equal(t, closedAt, *st.State().Job(job.ID).ClosedAt)

	require.NoError(t, svc.Reopen(ctx, job.ID))
	stored = st.State().Job(job.ID)
	assert.False(t, stored.Closed)
	assert.Nil(t, stored.ClosedAt)

	assert.ErrorIs(t, svc.Close(ctx, "ghost"), ErrJobNotFound)
	assert.ErrorIs(t, svc.Reopen(ctx, "ghost"), ErrJobNotFound)
}

func TestJobs_ListOpenFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewJobService(st)

	a, err := svc.Resolve(ctx, "A")
	require.NoError(t, err)
	b, err := svc.Resolve(ctx, "B")
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, a.ID))

	jobs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, b.ID, jobs[0].ID)
	assert.Equal(t, a.ID, jobs[1].ID)

	open, err := svc.Open(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, b.ID, open[0].ID)
}

func TestJobs_Totals(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Transmission rebuild")

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	seedEntry(t, st, client.ID, job.ID, "Transmission rebuild", start, 90)
	seedCharge(t, st, job.ID, client.ID, 2, 40, 55, start)

	svc := NewJobService(st)
	totals, err := svc.Totals(ctx, job.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, totals.Hours, 1e-9)
	assert.InDelta(t, 150.0, totals.LaborAmount, 1e-9)
	assert.InDelta(t, 110.0, totals.ChargeAmount, 1e-9)
	assert.InDelta(t, 260.0, totals.Total(), 1e-9)

	_, err = svc.Totals(ctx, "ghost")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobs_Backfill(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)

	// Entries predating the job list: same task name, no jobId
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	require.NoError(t, st.Update(func(s *domain.AppState) error {
		for i := 0; i < 2; i++ {
			e := domain.NewTimeEntry(client.ID, "Brake service", "", "", start.Add(time.Duration(i)*time.Hour))
			e.Stop(start.Add(time.Duration(i)*time.Hour + 30*time.Minute))
			s.Entries = append(s.Entries, *e)
		}
		e := domain.NewTimeEntry(client.ID, "Oil change", "dangling", "", start)
		e.Stop(start.Add(time.Hour))
		s.Entries = append(s.Entries, *e)
		return nil
	}))

	svc := NewJobService(st)
	linked, err := svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, linked)

	state := st.State()
	require.Len(t, state.Jobs, 2)
	assert.Equal(t, state.Entries[0].JobID, state.Entries[1].JobID)
	assert.NotEqual(t, state.Entries[0].JobID, state.Entries[2].JobID)
	for _, e := range state.Entries {
		require.NotNil(t, state.Job(e.JobID))
	}

	// Second run is a no-op
	linked, err = svc.Backfill(ctx)
	require.NoError(t, err)
	assert.Zero(t, linked)
	require.Len(t, st.State().Jobs, 2)
}
