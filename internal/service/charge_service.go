package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

var (
	ErrChargeNotFound = errors.New("charge not found")
	ErrChargeInvoiced = errors.New("charge is locked by an invoice")
)

// ChargeParams carries the editable fields of a charge. A zero UnitPrice
// defaults to UnitCost.
type ChargeParams struct {
	ClientID    string
	Kind        domain.ChargeKind
	Description string
	Quantity    float64
	UnitCost    float64
	UnitPrice   float64
	Category    string
}

// ChargeService manages parts and expense charges on jobs
type ChargeService interface {
	Add(ctx context.Context, jobID string, p ChargeParams) (*domain.Charge, error)
	// Edit rewrites the charge fields and refreshes amountCached.
	// Invoiced charges are locked.
	Edit(ctx context.Context, id string, p ChargeParams) (*domain.Charge, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Charge, error)
	ListForJob(ctx context.Context, jobID string) ([]domain.Charge, error)
	// BulkImport reads CSV lines of the form
	// kind,description,qty,unitCost[,unitPrice[,category]] and adds a
	// charge per valid line, returning the number imported
	BulkImport(ctx context.Context, jobID, clientID string, r io.Reader) (int, error)
}

type chargeService struct {
	store *store.Store
}

// NewChargeService creates a new charge service
func NewChargeService(st *store.Store) ChargeService {
	return &chargeService{store: st}
}

// inferClientID picks the client for a charge: the explicit parameter,
// else the client of the job's first entry, else the first client.
func inferClientID(st *domain.AppState, jobID, explicit string) string {
	if explicit != "" {
		return explicit
	}
	for i := range st.Entries {
		if st.Entries[i].JobID == jobID {
			return st.Entries[i].ClientID
		}
	}
	if len(st.Clients) > 0 {
		return st.Clients[0].ID
	}
	return ""
}

func (s *chargeService) Add(ctx context.Context, jobID string, p ChargeParams) (*domain.Charge, error) {
	var added domain.Charge
	err := s.store.Update(func(st *domain.AppState) error {
		if st.Job(jobID) == nil {
			return ErrJobNotFound
		}
		clientID := inferClientID(st, jobID, p.ClientID)
		if clientID == "" || st.Client(clientID) == nil {
			return ErrClientNotFound
		}
		charge := domain.NewCharge(jobID, clientID, p.Kind, p.Description, p.Quantity, p.UnitCost, p.UnitPrice, p.Category, time.Now())
		if err := charge.Validate(); err != nil {
			return err
		}
		st.Charges = append(st.Charges, *charge)
		added = *charge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (s *chargeService) Edit(ctx context.Context, id string, p ChargeParams) (*domain.Charge, error) {
	var edited domain.Charge
	err := s.store.Update(func(st *domain.AppState) error {
		charge := st.Charge(id)
		if charge == nil {
			return ErrChargeNotFound
		}
		if charge.Invoiced {
			return ErrChargeInvoiced
		}

		if p.Kind != "" {
			charge.Kind = p.Kind
		}
		charge.Description = strings.TrimSpace(p.Description)
		charge.Quantity = p.Quantity
		charge.UnitCost = p.UnitCost
		charge.UnitPrice = p.UnitPrice
		if charge.UnitPrice == 0 {
			charge.UnitPrice = charge.UnitCost
		}
		if charge.Kind == domain.ChargeExpense {
			charge.Category = p.Category
			if charge.Category == "" {
				charge.Category = domain.DefaultExpenseCategory
			}
		}
		charge.Recalculate()
		if err := charge.Validate(); err != nil {
			return err
		}
		edited = *charge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &edited, nil
}

func (s *chargeService) Delete(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		for i := range st.Charges {
			if st.Charges[i].ID != id {
				continue
			}
			if st.Charges[i].Invoiced {
				return ErrChargeInvoiced
			}
			st.Charges = append(st.Charges[:i], st.Charges[i+1:]...)
			return nil
		}
		return ErrChargeNotFound
	})
}

func (s *chargeService) Get(ctx context.Context, id string) (*domain.Charge, error) {
	st := s.store.State()
	charge := st.Charge(id)
	if charge == nil {
		return nil, ErrChargeNotFound
	}
	c := *charge
	return &c, nil
}

func (s *chargeService) ListForJob(ctx context.Context, jobID string) ([]domain.Charge, error) {
	state := s.store.State()
	charges := make([]domain.Charge, 0)
	for _, c := range state.Charges {
		if c.JobID == jobID {
			charges = append(charges, c)
		}
	}
	return charges, nil
}

func (s *chargeService) BulkImport(ctx context.Context, jobID, clientID string, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // unitPrice and category are optional

	var params []ChargeParams
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 4 {
			return 0, fmt.Errorf("line %d: expected kind,description,qty,unitCost", line)
		}

		kind := domain.ChargeKind(strings.TrimSpace(record[0]))
		qty, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: bad quantity: %w", line, err)
		}
		unitCost, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: bad unit cost: %w", line, err)
		}
		p := ChargeParams{
			ClientID:    clientID,
			Kind:        kind,
			Description: record[1],
			Quantity:    qty,
			UnitCost:    unitCost,
		}
		if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
			price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: bad unit price: %w", line, err)
			}
			p.UnitPrice = price
		}
		if len(record) > 5 {
			p.Category = strings.TrimSpace(record[5])
		}
		params = append(params, p)
	}

	// All rows parsed; commit them in one state update
	count := 0
	err := s.store.Update(func(st *domain.AppState) error {
		if st.Job(jobID) == nil {
			return ErrJobNotFound
		}
		now := time.Now()
		for _, p := range params {
			cid := inferClientID(st, jobID, p.ClientID)
			if cid == "" || st.Client(cid) == nil {
				return ErrClientNotFound
			}
			charge := domain.NewCharge(jobID, cid, p.Kind, p.Description, p.Quantity, p.UnitCost, p.UnitPrice, p.Category, now)
			if err := charge.Validate(); err != nil {
				return err
			}
			st.Charges = append(st.Charges, *charge)
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
