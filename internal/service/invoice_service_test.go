package service

import (
	"context"
	"testing"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRange() (time.Time, time.Time) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)
	return start, end
}

func TestGenerateDraft_MissingSelection(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(newTestStore(t), "INV")

	start, end := draftRange()
	_, err := svc.GenerateDraft(ctx, DraftParams{Start: start, End: end})
	assert.ErrorIs(t, err, ErrMissingSelection)

	_, err = svc.GenerateDraft(ctx, DraftParams{ClientID: "c1", End: end})
	assert.ErrorIs(t, err, ErrMissingSelection)
}

func TestGenerateDraft_InvalidRange(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	svc := NewInvoiceService(st, "INV")

	start, end := draftRange()
	_, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: end.AddDate(0, 1, 0), End: start})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateDraft_NoBillableWork(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	svc := NewInvoiceService(st, "INV")

	start, end := draftRange()
	_, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	assert.ErrorIs(t, err, ErrNoBillableWork)
}

func TestGenerateDraft_SkipsOpenAndForeignEntries(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	other := seedClient(t, st, "Borealis", 80)
	job := seedJob(t, st, "Brake service")

	start, end := draftRange()
	seedEntry(t, st, client.ID, job.ID, "Brake service", start.Add(24*time.Hour), 90)
	seedEntry(t, st, other.ID, job.ID, "Brake service", start.Add(24*time.Hour), 60)
	// Open entry must never appear on a draft
	require.NoError(t, st.Update(func(s *domain.AppState) error {
		e := domain.NewTimeEntry(client.ID, "Brake service", job.ID, "", start.Add(48*time.Hour))
		s.Entries = append(s.Entries, *e)
		s.Active = &domain.ActiveRef{EntryID: e.ID}
		return nil
	}))

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)

	require.Len(t, draft.LineItems, 1)
	assert.InDelta(t, 1.5, draft.LineItems[0].Hours, 1e-9)
	assert.InDelta(t, 150.0, draft.LineItems[0].Amount, 1e-9)
	assert.True(t, draft.IsSelected(draft.LineItems[0].ID))
}

func TestFinalize_PartialSelection(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Brake service")

	start, end := draftRange()
	e1 := seedEntry(t, st, client.ID, job.ID, "Brake service", start.Add(24*time.Hour), 60)
	e2 := seedEntry(t, st, client.ID, job.ID, "Brake service", start.Add(48*time.Hour), 30)
	e3 := seedEntry(t, st, client.ID, job.ID, "Brake service", start.Add(72*time.Hour), 45)

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)
	require.Len(t, draft.LineItems, 3)

	draft.Toggle(e2.ID)
	assert.False(t, draft.IsSelected(e2.ID))
	assert.InDelta(t, 1.75, draft.SelectedHours(), 1e-9)

	invoice, err := svc.Finalize(ctx, draft, false)
	require.NoError(t, err)
	assert.InDelta(t, 175.0, invoice.Total, 1e-9)
	assert.Equal(t, invoice.Subtotal, invoice.Total)
	require.Len(t, invoice.LineItems, 2)
	assert.True(t, draft.Finalized())

	state := st.State()
	assert.True(t, state.Entry(e1.ID).Invoiced)
	assert.False(t, state.Entry(e2.ID).Invoiced)
	assert.True(t, state.Entry(e3.ID).Invoiced)
	require.Len(t, state.Invoices, 1)

	// The deselected entry stays billable on a fresh draft
	next, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)
	require.Len(t, next.LineItems, 1)
	assert.Equal(t, e2.ID, next.LineItems[0].ID)
}

func TestFinalize_Twice(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Oil change")

	start, end := draftRange()
	seedEntry(t, st, client.ID, job.ID, "Oil change", start.Add(24*time.Hour), 60)

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, draft, false)
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, draft, false)
	assert.ErrorIs(t, err, ErrDraftFinalized)
	require.Len(t, st.State().Invoices, 1)
}

func TestFinalize_EmptySelection(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Oil change")

	start, end := draftRange()
	e := seedEntry(t, st, client.ID, job.ID, "Oil change", start.Add(24*time.Hour), 60)

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)

	draft.ClearAll()
	_, err = svc.Finalize(ctx, draft, false)
	assert.ErrorIs(t, err, ErrEmptySelection)

	state := st.State()
	assert.False(t, state.Entry(e.ID).Invoiced)
	assert.Empty(t, state.Invoices)
	assert.False(t, draft.Finalized())
}

func TestFinalize_JobScopeClosesJob(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Transmission rebuild")

	start, end := draftRange()
	seedEntry(t, st, client.ID, job.ID, "Transmission rebuild", start.Add(24*time.Hour), 120)
	seedCharge(t, st, job.ID, client.ID, 2, 40, 55, start.Add(24*time.Hour))

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{
		ClientID: client.ID,
		Start:    start,
		End:      end,
		Scope:    domain.ScopeJob(job.ID),
	})
	require.NoError(t, err)
	require.Len(t, draft.LineItems, 2)
	assert.Equal(t, "Transmission rebuild", draft.JobName)

	invoice, err := svc.Finalize(ctx, draft, true)
	require.NoError(t, err)
	// 2h labor at $100 plus 2 x $55 parts
	assert.InDelta(t, 310.0, invoice.Total, 1e-9)
	require.NotNil(t, invoice.JobID)
	assert.Equal(t, job.ID, *invoice.JobID)

	state := st.State()
	stored := state.Job(job.ID)
	require.NotNil(t, stored)
	assert.True(t, stored.Closed)
	require.NotNil(t, stored.ClosedAt)
	for _, c := range state.Charges {
		assert.True(t, c.Invoiced)
	}
}

func TestGenerateDraft_ClosedJobScope(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Detailing")
	require.NoError(t, NewJobService(st).Close(ctx, job.ID))

	start, end := draftRange()
	svc := NewInvoiceService(st, "INV")
	_, err := svc.GenerateDraft(ctx, DraftParams{
		ClientID: client.ID,
		Start:    start,
		End:      end,
		Scope:    domain.ScopeJob(job.ID),
	})
	assert.ErrorIs(t, err, ErrJobClosed)
}

func TestDraft_SelectionFrozenAfterFinalize(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Oil change")

	start, end := draftRange()
	e := seedEntry(t, st, client.ID, job.ID, "Oil change", start.Add(24*time.Hour), 60)

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)
	_, err = svc.Finalize(ctx, draft, false)
	require.NoError(t, err)

	draft.Toggle(e.ID)
	draft.ClearAll()
	assert.True(t, draft.IsSelected(e.ID))
	require.Len(t, draft.SelectedItems(), 1)
}

func TestUndoInvoiced(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Oil change")

	start, end := draftRange()
	e := seedEntry(t, st, client.ID, job.ID, "Oil change", start.Add(24*time.Hour), 60)

	svc := NewInvoiceService(st, "INV")
	assert.ErrorIs(t, svc.UndoInvoiced(ctx, e.ID), ErrNotInvoiced)

	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)
	_, err = svc.Finalize(ctx, draft, false)
	require.NoError(t, err)
	require.True(t, st.State().Entry(e.ID).Invoiced)

	require.NoError(t, svc.UndoInvoiced(ctx, e.ID))
	state := st.State()
	assert.False(t, state.Entry(e.ID).Invoiced)
	// The snapshot is untouched by the undo
	require.Len(t, state.Invoices, 1)
	require.Len(t, state.Invoices[0].LineItems, 1)
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	client := seedClient(t, st, "ACME Garage", 100)
	job := seedJob(t, st, "Oil change")

	start, end := draftRange()
	seedEntry(t, st, client.ID, job.ID, "Oil change", start.Add(24*time.Hour), 60)

	svc := NewInvoiceService(st, "INV")
	draft, err := svc.GenerateDraft(ctx, DraftParams{ClientID: client.ID, Start: start, End: end})
	require.NoError(t, err)
	invoice, err := svc.Finalize(ctx, draft, false)
	require.NoError(t, err)

	byID, err := svc.Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNumber, byID.InvoiceNumber)

	byNumber, err := svc.Get(ctx, invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, byNumber.ID)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	invoices, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, client.Name, invoices[0].ClientName)
}
