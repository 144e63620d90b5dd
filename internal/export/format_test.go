package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	date := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return Document{
		Business:      "Shop Hours Time Tracking",
		ClientName:    "ACME Garage",
		InvoiceNumber: "INV-1234",
		JobName:       "Brake service",
		Generated:     time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		PeriodStart:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []domain.LineItem{
			{
				ID: "e1", Date: date.UnixMilli(), Task: "Brake service",
				Notes: "front pads", Hours: 1.5, Rate: 100, Amount: 150,
			},
			{
				ID: "ch1", Kind: domain.LineItemCharge, ChargeType: "part",
				Date: date.UnixMilli(), Task: "brake pads",
				Rate: 50, Quantity: 2, UnitCost: 35, Amount: 100,
			},
		},
		TotalHours:  1.5,
		TotalAmount: 250,
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:        "$0.00",
		0.5:      "$0.50",
		150:      "$150.00",
		1234.5:   "$1,234.50",
		999.999:  "$1,000.00",
		-42.25:   "-$42.25",
		1000000:  "$1,000,000.00",
		12345.67: "$12,345.67",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatCurrency(amount), "amount %v", amount)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 30*time.Minute, "2h 30m"},
		{-time.Minute, "0m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.d), "duration %v", tc.d)
	}
}

func TestFromInvoice(t *testing.T) {
	jobID := "j1"
	inv := &domain.Invoice{
		ID:            "inv1",
		InvoiceNumber: "INV-1234",
		ClientID:      "c1",
		ClientName:    "ACME Garage",
		JobID:         &jobID,
		JobName:       "Brake service",
		DateRange: domain.DateRange{
			Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
			End:   time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC).UnixMilli(),
		},
		GeneratedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		LineItems: []domain.LineItem{
			{ID: "e1", Hours: 1.5, Rate: 100, Amount: 150},
			{ID: "ch1", Kind: domain.LineItemCharge, Amount: 100},
		},
		Subtotal: 250,
		Total:    250,
	}

	doc := FromInvoice(inv, "Shop Hours Time Tracking")
	assert.Equal(t, "ACME Garage", doc.ClientName)
	assert.Equal(t, "Brake service", doc.JobName)
	assert.InDelta(t, 1.5, doc.TotalHours, 1e-9) // charge hours never count
	assert.InDelta(t, 250.0, doc.TotalAmount, 1e-9)
	assert.Len(t, doc.Items, 2)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleDocument()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Task,Notes,Hours,Rate,Amount", lines[0])
	assert.Equal(t, `Mar 2, 2026,Brake service,front pads,1.50,100.00,150.00`, stripQuotes(lines[1]))
	assert.Contains(t, lines[2], "part x2 @ $50.00")
	assert.Equal(t, `,,TOTAL,1.50,,250.00`, lines[3])
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func TestCSVFilename(t *testing.T) {
	name := CSVFilename(sampleDocument())
	assert.Equal(t, "invoice-ACME Garage-2026-03-01-to-2026-03-31.csv", name)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleDocument()))

	html := buf.String()
	assert.Contains(t, html, "ACME Garage")
	assert.Contains(t, html, "INV-1234")
	assert.Contains(t, html, "Brake service")
	assert.Contains(t, html, "$250.00")
	// Charge rows carry their quantity detail
	assert.Contains(t, html, "part x2 @ $50.00")
}
