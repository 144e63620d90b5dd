package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ChargeKind string

const (
	ChargePart    ChargeKind = "part"
	ChargeExpense ChargeKind = "expense"
)

// DefaultExpenseCategory is assigned when an expense charge has no category
const DefaultExpenseCategory = "other"

// Charge is a non-time billable item (a part sold or an expense incurred)
// tied to a job and client. AmountCached is always quantity*unitPrice and
// must be recomputed on every edit.
type Charge struct {
	ID           string     `json:"id"`
	JobID        string     `json:"jobId"`
	ClientID     string     `json:"clientId"`
	Kind         ChargeKind `json:"kind"`
	Description  string     `json:"description"`
	Quantity     float64    `json:"quantity"`
	UnitCost     float64    `json:"unitCost"`
	UnitPrice    float64    `json:"unitPrice"`
	Category     string     `json:"category,omitempty"`
	AmountCached float64    `json:"amountCached"`
	CreatedAt    int64      `json:"createdAt"`
	Invoiced     bool       `json:"invoiced"`
}

// NewCharge creates a charge. A zero unitPrice defaults to unitCost, and
// expense charges get a default category.
func NewCharge(jobID, clientID string, kind ChargeKind, description string, quantity, unitCost, unitPrice float64, category string, createdAt time.Time) *Charge {
	if unitPrice == 0 {
		unitPrice = unitCost
	}
	c := &Charge{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ClientID:    clientID,
		Kind:        kind,
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitCost:    unitCost,
		UnitPrice:   unitPrice,
		CreatedAt:   createdAt.UnixMilli(),
	}
	if kind == ChargeExpense {
		c.Category = category
		if c.Category == "" {
			c.Category = DefaultExpenseCategory
		}
	}
	c.Recalculate()
	return c
}

// Amount returns quantity*unitPrice
func (c *Charge) Amount() float64 {
	return c.Quantity * c.UnitPrice
}

// Recalculate refreshes the cached amount after a quantity or price edit
func (c *Charge) Recalculate() {
	c.AmountCached = c.Amount()
}

// CreatedTime returns the creation time as a time.Time
func (c *Charge) CreatedTime() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

// Validate returns an error if the charge is invalid
func (c *Charge) Validate() error {
	if c.JobID == "" {
		return errors.New("job ID is required")
	}
	if c.ClientID == "" {
		return errors.New("client ID is required")
	}
	if c.Kind != ChargePart && c.Kind != ChargeExpense {
		return errors.New("charge kind must be part or expense")
	}
	if strings.TrimSpace(c.Description) == "" {
		return errors.New("description is required")
	}
	if c.Quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	if c.UnitCost < 0 {
		return errors.New("unit cost cannot be negative")
	}
	if c.UnitPrice < 0 {
		return errors.New("unit price cannot be negative")
	}
	return nil
}
