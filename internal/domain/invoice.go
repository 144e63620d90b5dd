package domain

import "time"

// DateRange is an inclusive billing period in millisecond epoch bounds
type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// StartTime returns the lower bound as a time.Time
func (r DateRange) StartTime() time.Time { return time.UnixMilli(r.Start) }

// EndTime returns the upper bound as a time.Time
func (r DateRange) EndTime() time.Time { return time.UnixMilli(r.End) }

// Contains reports whether the millisecond timestamp falls inside the range
func (r DateRange) Contains(ms int64) bool {
	return ms >= r.Start && ms <= r.End
}

// LineItemKind distinguishes time line items from charge line items
const LineItemCharge = "charge"

// LineItem is one row of an invoice. Time items carry hours and the client
// rate; charge items carry hours=0, rate=unitPrice and the quantity/cost
// detail. Exporters format these values and never recompute them.
type LineItem struct {
	ID         string  `json:"id"` // source entry or charge id
	Kind       string  `json:"kind,omitempty"`
	ChargeType string  `json:"chargeType,omitempty"`
	Date       int64   `json:"date"`
	Task       string  `json:"task"`
	Notes      string  `json:"notes,omitempty"`
	Hours      float64 `json:"hours"`
	Rate       float64 `json:"rate"`
	Quantity   float64 `json:"quantity,omitempty"`
	UnitCost   float64 `json:"unitCost,omitempty"`
	Amount     float64 `json:"amount"`
}

// IsCharge reports whether the item came from a charge
func (li LineItem) IsCharge() bool { return li.Kind == LineItemCharge }

// Invoice is the immutable persisted snapshot produced by finalization.
// It holds denormalized copies of everything needed to redisplay it, so
// later edits or deletes of the live records cannot corrupt the history.
// Subtotal and Total are kept as distinct fields even though no tax or
// discount layer exists yet.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	ClientID      string     `json:"clientId"`
	ClientName    string     `json:"clientName"`
	ClientContact string     `json:"clientContact,omitempty"`
	JobID         *string    `json:"jobId"`
	JobName       string     `json:"jobName,omitempty"`
	DateRange     DateRange  `json:"dateRange"`
	GeneratedAt   int64      `json:"generatedAt"`
	LineItems     []LineItem `json:"lineItems"`
	Subtotal      float64    `json:"subtotal"`
	Total         float64    `json:"total"`
}

// GeneratedTime returns the finalization time as a time.Time
func (i *Invoice) GeneratedTime() time.Time { return time.UnixMilli(i.GeneratedAt) }

// TotalHours sums the hours of the snapshot's time line items
func (i *Invoice) TotalHours() float64 {
	var total float64
	for _, li := range i.LineItems {
		if !li.IsCharge() {
			total += li.Hours
		}
	}
	return total
}

// Clone returns a deep copy of the invoice snapshot
func (i Invoice) Clone() Invoice {
	if i.JobID != nil {
		id := *i.JobID
		i.JobID = &id
	}
	items := make([]LineItem, len(i.LineItems))
	copy(items, i.LineItems)
	i.LineItems = items
	return i
}

// InvoiceScope selects which records a draft considers: all of a client's
// billable work, or only the work on one job.
type InvoiceScope struct {
	byJob bool
	jobID string
}

// ScopeClient covers every job of the client
func ScopeClient() InvoiceScope { return InvoiceScope{} }

// ScopeJob restricts the draft to a single job
func ScopeJob(jobID string) InvoiceScope {
	return InvoiceScope{byJob: true, jobID: jobID}
}

// JobID returns the scoped job id and whether the scope is job-mode
func (s InvoiceScope) JobID() (string, bool) {
	return s.jobID, s.byJob
}

// ByJob reports whether the scope is restricted to one job
func (s InvoiceScope) ByJob() bool { return s.byJob }
