package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_AddValidates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	svc := NewScheduleService(st)

	_, err := svc.Add(ctx, ScheduleParams{ClientID: client.ID, TaskName: "Inspection"})
	assert.Error(t, err) // date is required

	_, err = svc.Add(ctx, ScheduleParams{ClientID: "ghost", TaskName: "Inspection", Date: "2026-09-15"})
	assert.ErrorIs(t, err, ErrClientNotFound)

	sched, err := svc.Add(ctx, ScheduleParams{
		ClientID:       client.ID,
		TaskName:       "Inspection",
		Date:           "2026-09-15",
		Time:           "09:00",
		EstimatedHours: 1.5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sched.ID)
	assert.False(t, sched.Completed)
}

func TestSchedule_ListAndDone(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	svc := NewScheduleService(st)

	a, err := svc.Add(ctx, ScheduleParams{ClientID: client.ID, TaskName: "Inspection", Date: "2026-09-15"})
	require.NoError(t, err)
	b, err := svc.Add(ctx, ScheduleParams{ClientID: client.ID, TaskName: "Tune-up", Date: "2026-09-16"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkDone(ctx, a.ID))
	assert.ErrorIs(t, svc.MarkDone(ctx, "ghost"), ErrScheduleNotFound)

	pending, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].ID)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSchedule_Delete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	svc := NewScheduleService(st)

	sched, err := svc.Add(ctx, ScheduleParams{ClientID: client.ID, TaskName: "Inspection", Date: "2026-09-15"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sched.ID))
	assert.ErrorIs(t, svc.Delete(ctx, sched.ID), ErrScheduleNotFound)
	assert.Empty(t, st.State().ScheduledJobs)
}
