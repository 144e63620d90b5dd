package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClients_AddAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newTestStore(t))

	client, err := svc.Add(ctx, "ACME Garage", "acme@example.com", 100)
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)

	byID, err := svc.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME Garage", byID.Name)

	byName, err := svc.Get(ctx, "acme garage")
	require.NoError(t, err)
	assert.Equal(t, client.ID, byName.ID)

	_, err = svc.Get(ctx, "nobody")
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = svc.Add(ctx, "", "", 50)
	assert.Error(t, err)
}

func TestClients_Update(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewClientService(st)

	client, err := svc.Add(ctx, "ACME Garage", "", 100)
	require.NoError(t, err)

	client.Rate = 120
	client.Contact = "555-0100"
	require.NoError(t, svc.Update(ctx, *client))

	stored := st.State().Client(client.ID)
	require.NotNil(t, stored)
	assert.InDelta(t, 120.0, stored.Rate, 1e-9)
	assert.Equal(t, "555-0100", stored.Contact)

	ghost := *client
	ghost.ID = "ghost"
	assert.ErrorIs(t, svc.Update(ctx, ghost), ErrClientNotFound)
}

func TestClients_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	other := seedClient(t, st, "Borealis", 80)
	job := seedJob(t, st, "Brake service")

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	seedEntry(t, st, client.ID, job.ID, "Brake service", start, 60)
	kept := seedEntry(t, st, other.ID, job.ID, "Brake service", start, 30)
	charge := seedCharge(t, st, job.ID, client.ID, 1, 40, 55, start)

	_, err := NewScheduleService(st).Add(ctx, ScheduleParams{ClientID: client.ID, TaskName: "Inspection", Date: "2026-03-20"})
	require.NoError(t, err)

	// Running timer for the doomed client
	_, err = NewTimerService(st).Start(ctx, client.ID, "Brake service", "")
	require.NoError(t, err)

	svc := NewClientService(st)
	require.NoError(t, svc.Delete(ctx, client.ID))

	state := st.State()
	assert.Nil(t, state.Client(client.ID))
	require.Len(t, state.Entries, 1)
	assert.Equal(t, kept.ID, state.Entries[0].ID)
	assert.Empty(t, state.ScheduledJobs)
	assert.Nil(t, state.Active)
	// Charges keep their job; they are billed through the job, not the client
	require.NotNil(t, state.Charge(charge.ID))

	assert.ErrorIs(t, svc.Delete(ctx, client.ID), ErrClientNotFound)
}
