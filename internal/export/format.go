// Package export renders invoice line items to CSV, HTML and PDF.
// Exporters are pure formatters: they present the hours, rates and
// amounts they are given and never recompute them.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/cole/shophours/internal/domain"
)

// Document is the data contract every exporter consumes: a frozen
// line-item list plus already-computed totals.
type Document struct {
	Business      string
	ClientName    string
	ClientContact string
	InvoiceNumber string
	JobName       string
	Generated     time.Time
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Items         []domain.LineItem
	TotalHours    float64
	TotalAmount   float64
}

// FromInvoice builds an export document from a finalized snapshot
func FromInvoice(inv *domain.Invoice, business string) Document {
	return Document{
		Business:      business,
		ClientName:    inv.ClientName,
		ClientContact: inv.ClientContact,
		InvoiceNumber: inv.InvoiceNumber,
		JobName:       inv.JobName,
		Generated:     time.UnixMilli(inv.GeneratedAt),
		PeriodStart:   inv.DateRange.StartTime(),
		PeriodEnd:     inv.DateRange.EndTime(),
		Items:         inv.LineItems,
		TotalHours:    inv.TotalHours(),
		TotalAmount:   inv.Total,
	}
}

// FormatDate renders a date the way invoices display it
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatCurrency renders a dollar amount with thousands separators
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	cents := int64(amount*100+0.5) - whole*100
	if cents == 100 { // rounding carried into the next dollar
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(whole), cents)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

// FormatDuration renders a span as "2h 30m"
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// itemNotes renders the notes column; charge items show their
// quantity/cost detail there since they carry no free-text notes
func itemNotes(li domain.LineItem) string {
	if !li.IsCharge() {
		return li.Notes
	}
	return fmt.Sprintf("%s x%.2g @ %s", li.ChargeType, li.Quantity, FormatCurrency(li.Rate))
}
