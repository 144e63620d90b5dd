package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cole/shophours/internal/billing"
	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

var (
	ErrMissingSelection = errors.New("client, start date and end date are required")
	ErrInvalidRange     = errors.New("start date must not be after end date")
	ErrNoBillableWork   = errors.New("no billable work for the selected client and range")
	ErrEmptySelection   = errors.New("no line items selected")
	ErrDraftFinalized   = errors.New("draft is already finalized")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrNotInvoiced      = errors.New("record is not invoiced")
)

// DraftParams describes the work a draft should consider
type DraftParams struct {
	ClientID string
	Start    time.Time
	End      time.Time
	Scope    domain.InvoiceScope
}

// InvoiceDraft is a transient candidate invoice with a mutable selection.
// It is never persisted; navigating away simply drops it. Once finalized
// the selection freezes and only the read accessors remain meaningful.
type InvoiceDraft struct {
	Client        domain.Client
	Scope         domain.InvoiceScope
	JobName       string
	Range         domain.DateRange
	InvoiceNumber string
	GeneratedAt   time.Time
	LineItems     []domain.LineItem

	selected  map[string]bool
	finalized bool
}

// Toggle flips one line item's inclusion. No-op after finalization.
func (d *InvoiceDraft) Toggle(id string) {
	if d.finalized {
		return
	}
	if _, ok := d.selected[id]; ok {
		d.selected[id] = !d.selected[id]
	}
}

// SelectAll includes every line item. No-op after finalization.
func (d *InvoiceDraft) SelectAll() {
	if d.finalized {
		return
	}
	for id := range d.selected {
		d.selected[id] = true
	}
}

// ClearAll excludes every line item. Zero selected is a valid transient
// state but blocks finalization. No-op after finalization.
func (d *InvoiceDraft) ClearAll() {
	if d.finalized {
		return
	}
	for id := range d.selected {
		d.selected[id] = false
	}
}

// IsSelected reports whether the line item is included
func (d *InvoiceDraft) IsSelected(id string) bool {
	return d.selected[id]
}

// Finalized reports whether the draft has been committed
func (d *InvoiceDraft) Finalized() bool {
	return d.finalized
}

// SelectedItems returns the included line items in display order
func (d *InvoiceDraft) SelectedItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(d.LineItems))
	for _, li := range d.LineItems {
		if d.selected[li.ID] {
			items = append(items, li)
		}
	}
	return items
}

// SelectedHours sums hours over the selected time items. Recomputed from
// the live selection on every call, never cached.
func (d *InvoiceDraft) SelectedHours() float64 {
	var total float64
	for _, li := range d.SelectedItems() {
		if !li.IsCharge() {
			total += li.Hours
		}
	}
	return total
}

// SelectedAmount sums amounts over all selected items, time and charge
func (d *InvoiceDraft) SelectedAmount() float64 {
	var total float64
	for _, li := range d.SelectedItems() {
		total += li.Amount
	}
	return total
}

// InvoiceService builds invoice drafts and commits them to history
type InvoiceService interface {
	// GenerateDraft selects eligible uninvoiced work for a client and
	// range, optionally scoped to one job, with everything selected
	GenerateDraft(ctx context.Context, params DraftParams) (*InvoiceDraft, error)

	// Finalize atomically flags the selected records as invoiced,
	// appends an immutable snapshot, and optionally closes the job
	Finalize(ctx context.Context, draft *InvoiceDraft, closeJob bool) (*domain.Invoice, error)

	// UndoInvoiced reverts a record's invoiced flag, the only permitted
	// true-to-false transition
	UndoInvoiced(ctx context.Context, id string) error

	// List returns the invoice history, newest first
	List(ctx context.Context) ([]domain.Invoice, error)

	// Get retrieves a snapshot by id or invoice number
	Get(ctx context.Context, idOrNumber string) (*domain.Invoice, error)
}

type invoiceService struct {
	store        *store.Store
	numberPrefix string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(st *store.Store, numberPrefix string) InvoiceService {
	if numberPrefix == "" {
		numberPrefix = "INV"
	}
	return &invoiceService{store: st, numberPrefix: numberPrefix}
}

func (s *invoiceService) GenerateDraft(ctx context.Context, params DraftParams) (*InvoiceDraft, error) {
	if params.ClientID == "" || params.Start.IsZero() || params.End.IsZero() {
		return nil, ErrMissingSelection
	}
	jobID, byJob := params.Scope.JobID()
	if byJob && jobID == "" {
		return nil, fmt.Errorf("%w: job", ErrMissingSelection)
	}

	dateRange := billing.NormalizeRange(params.Start, params.End)
	if dateRange.Start > dateRange.End {
		return nil, ErrInvalidRange
	}

	state := s.store.State()
	client := state.Client(params.ClientID)
	if client == nil {
		return nil, ErrClientNotFound
	}

	var jobName string
	if byJob {
		job := state.Job(jobID)
		if job == nil {
			return nil, ErrJobNotFound
		}
		if job.Closed {
			return nil, ErrJobClosed
		}
		jobName = job.Name
	}

	now := time.Now()
	draft := &InvoiceDraft{
		Client:        *client,
		Scope:         params.Scope,
		JobName:       jobName,
		Range:         dateRange,
		InvoiceNumber: fmt.Sprintf("%s-%d", s.numberPrefix, now.UnixMilli()),
		GeneratedAt:   now,
		selected:      make(map[string]bool),
	}

	// Time line items first, then charge items. The order carries no
	// meaning but must be stable for display and export.
	for i := range state.Entries {
		e := &state.Entries[i]
		if !e.Completed() || e.Invoiced || e.ClientID != params.ClientID {
			continue
		}
		if !dateRange.Contains(e.Start) {
			continue
		}
		if byJob && e.JobID != jobID {
			continue
		}
		task := e.TaskName
		if task == "" {
			task = "Unknown Task"
		}
		hours := billing.Hours(e)
		draft.LineItems = append(draft.LineItems, domain.LineItem{
			ID:     e.ID,
			Date:   e.Start,
			Task:   task,
			Notes:  e.Notes,
			Hours:  hours,
			Rate:   client.Rate,
			Amount: hours * client.Rate,
		})
	}
	for i := range state.Charges {
		c := &state.Charges[i]
		if c.Invoiced || c.ClientID != params.ClientID {
			continue
		}
		if !dateRange.Contains(c.CreatedAt) {
			continue
		}
		if byJob && c.JobID != jobID {
			continue
		}
		draft.LineItems = append(draft.LineItems, domain.LineItem{
			ID:         c.ID,
			Kind:       domain.LineItemCharge,
			ChargeType: string(c.Kind),
			Date:       c.CreatedAt,
			Task:       c.Description,
			Rate:       c.UnitPrice,
			Quantity:   c.Quantity,
			UnitCost:   c.UnitCost,
			Amount:     c.AmountCached,
		})
	}

	if len(draft.LineItems) == 0 {
		return nil, ErrNoBillableWork
	}

	for _, li := range draft.LineItems {
		draft.selected[li.ID] = true
	}
	return draft, nil
}

func (s *invoiceService) Finalize(ctx context.Context, draft *InvoiceDraft, closeJob bool) (*domain.Invoice, error) {
	if draft.finalized {
		return nil, ErrDraftFinalized
	}

	items := draft.SelectedItems()
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}

	amount := draft.SelectedAmount()
	invoice := domain.Invoice{
		ID:            newID(),
		InvoiceNumber: draft.InvoiceNumber,
		ClientID:      draft.Client.ID,
		ClientName:    draft.Client.Name,
		ClientContact: draft.Client.Contact,
		DateRange:     draft.Range,
		GeneratedAt:   time.Now().UnixMilli(),
		LineItems:     items,
		Subtotal:      amount,
		Total:         amount,
	}
	jobID, byJob := draft.Scope.JobID()
	if byJob {
		id := jobID
		invoice.JobID = &id
		invoice.JobName = draft.JobName
	}

	err := s.store.Update(func(st *domain.AppState) error {
		idx := domain.NewIndex(st)
		for _, li := range items {
			if e, ok := idx.Entries[li.ID]; ok {
				e.Invoiced = true
				continue
			}
			if c, ok := idx.Charges[li.ID]; ok {
				c.Invoiced = true
			}
		}
		st.Invoices = append(st.Invoices, invoice.Clone())
		if closeJob && byJob {
			if job, ok := idx.Jobs[jobID]; ok {
				job.Close(time.Now())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	draft.finalized = true
	return &invoice, nil
}

func (s *invoiceService) UndoInvoiced(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		if e := st.Entry(id); e != nil {
			if !e.Invoiced {
				return ErrNotInvoiced
			}
			e.Invoiced = false
			return nil
		}
		if c := st.Charge(id); c != nil {
			if !c.Invoiced {
				return ErrNotInvoiced
			}
			c.Invoiced = false
			return nil
		}
		return fmt.Errorf("no entry or charge with id %s", id)
	})
}

func (s *invoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	state := s.store.State()
	invoices := state.Invoices
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].GeneratedAt > invoices[j].GeneratedAt
	})
	return invoices, nil
}

func (s *invoiceService) Get(ctx context.Context, idOrNumber string) (*domain.Invoice, error) {
	state := s.store.State()
	for i := range state.Invoices {
		inv := &state.Invoices[i]
		if inv.ID == idOrNumber || inv.InvoiceNumber == idOrNumber {
			return inv, nil
		}
	}
	return nil, ErrInvoiceNotFound
}
