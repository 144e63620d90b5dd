package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return openStore(t, filepath.Join(t.TempDir(), "state.json"))
}

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(path, log)
	require.NoError(t, err)
	return st
}

func seedClient(t *testing.T, st *store.Store, name string, rate float64) domain.Client {
	t.Helper()
	client := domain.NewClient(name, "", rate)
	require.NoError(t, st.Update(func(s *domain.AppState) error {
		s.Clients = append(s.Clients, *client)
		return nil
	}))
	return *client
}

func seedJob(t *testing.T, st *store.Store, name string) domain.Job {
	t.Helper()
	job := domain.NewJob(name, time.Now())
	require.NoError(t, st.Update(func(s *domain.AppState) error {
		s.Jobs = append(s.Jobs, *job)
		return nil
	}))
	return *job
}

// seedEntry adds a completed entry of the given length ending at start+minutes
func seedEntry(t *testing.T, st *store.Store, clientID, jobID, task string, start time.Time, minutes int) domain.TimeEntry {
	t.Helper()
	entry := domain.NewTimeEntry(clientID, task, jobID, "", start)
	entry.Stop(start.Add(time.Duration(minutes) * time.Minute))
	require.NoError(t, st.Update(func(s *domain.AppState) error {
		s.Entries = append(s.Entries, *entry)
		return nil
	}))
	return entry.Clone()
}

func seedCharge(t *testing.T, st *store.Store, jobID, clientID string, qty, cost, price float64, at time.Time) domain.Charge {
	t.Helper()
	charge := domain.NewCharge(jobID, clientID, domain.ChargePart, "widget", qty, cost, price, "", at)
	require.NoError(t, st.Update(func(s *domain.AppState) error {
		s.Charges = append(s.Charges, *charge)
		return nil
	}))
	return *charge
}
