package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/cole/shophours/internal/domain"
)

// printTemplate mirrors the printable invoice layout: header, bill-to
// block, line-item table, totals row.
var printTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"currency": FormatCurrency,
	"date":     func(ms int64) string { return FormatDate(time.UnixMilli(ms)) },
	"hours":    func(h float64) string { return fmt.Sprintf("%.2f", h) },
	"notes":    func(li domain.LineItem) string { return itemNotes(li) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Invoice - {{.ClientName}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
        .header { text-align: center; margin-bottom: 40px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; }
        .invoice-info { display: flex; justify-content: space-between; margin-bottom: 30px; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #e5e7eb; }
        th { background-color: #f9fafb; font-weight: bold; }
        .amount { text-align: right; }
        .totals { font-weight: bold; background-color: #f3f4f6; }
        .footer { margin-top: 40px; text-align: center; color: #6b7280; font-size: 14px; }
        @media print { body { margin: 20px; } }
    </style>
</head>
<body>
    <div class="header">
        <div class="invoice-title">INVOICE</div>
        <div style="margin-top: 10px; color: #6b7280;">{{.Business}}</div>
    </div>

    <div class="invoice-info">
        <div>
            <h3>Bill To:</h3>
            <div><strong>{{.ClientName}}</strong></div>
            {{if .ClientContact}}<div>{{.ClientContact}}</div>{{end}}
        </div>
        <div>
            <h3>Invoice Details:</h3>
            <div><strong>Invoice #:</strong> {{.InvoiceNumber}}</div>
            <div><strong>Date:</strong> {{.GeneratedDate}}</div>
            <div><strong>Period:</strong> {{.PeriodStartDate}} - {{.PeriodEndDate}}</div>
            {{if .JobName}}<div><strong>Job:</strong> {{.JobName}}</div>{{end}}
        </div>
    </div>

    <table>
        <thead>
            <tr>
                <th>Date</th><th>Task</th><th>Notes</th>
                <th>Hours</th><th>Rate</th><th class="amount">Amount</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>{{date .Date}}</td>
                <td>{{.Task}}</td>
                <td>{{notes .}}</td>
                <td>{{hours .Hours}}</td>
                <td>{{currency .Rate}}</td>
                <td class="amount">{{currency .Amount}}</td>
            </tr>
            {{end}}
            <tr class="totals">
                <td colspan="3">TOTAL</td>
                <td><strong>{{hours .TotalHours}}</strong></td>
                <td></td>
                <td class="amount"><strong>{{currency .TotalAmount}}</strong></td>
            </tr>
        </tbody>
    </table>

    <div class="footer">
        <p>Generated by {{.Business}}</p>
        <p>Thank you for your business!</p>
    </div>
</body>
</html>
`))

// htmlDoc adds the pre-formatted date strings the template needs
type htmlDoc struct {
	Document
	GeneratedDate   string
	PeriodStartDate string
	PeriodEndDate   string
}

// WriteHTML renders the printable invoice page
func WriteHTML(w io.Writer, doc Document) error {
	data := htmlDoc{
		Document:        doc,
		GeneratedDate:   FormatDate(doc.Generated),
		PeriodStartDate: FormatDate(doc.PeriodStart),
		PeriodEndDate:   FormatDate(doc.PeriodEnd),
	}
	if err := printTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render invoice HTML: %w", err)
	}
	return nil
}
