package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// WritePDF renders the invoice document to a PDF file
func WritePDF(path string, doc Document) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(12, func() {
			m.Col(12, func() {
				m.Text("INVOICE", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  18,
					Color: color.Color{Red: 37, Green: 99, Blue: 235},
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(doc.Business, props.Text{
					Top:   2,
					Align: consts.Center,
					Size:  11,
					Color: color.Color{Red: 107, Green: 114, Blue: 128},
				})
			})
		})
	})

	m.Row(8, func() {
		m.Col(6, func() {
			m.Text("Bill To: "+doc.ClientName, props.Text{Top: 2, Style: consts.Bold, Size: 11})
		})
		m.Col(6, func() {
			m.Text("Invoice #: "+doc.InvoiceNumber, props.Text{Top: 2, Size: 10, Align: consts.Right})
		})
	})
	m.Row(8, func() {
		m.Col(6, func() {
			if doc.ClientContact != "" {
				m.Text(doc.ClientContact, props.Text{Top: 1, Size: 10})
			}
		})
		m.Col(6, func() {
			period := fmt.Sprintf("Period: %s - %s", FormatDate(doc.PeriodStart), FormatDate(doc.PeriodEnd))
			m.Text(period, props.Text{Top: 1, Size: 10, Align: consts.Right})
		})
	})
	if doc.JobName != "" {
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("Job: "+doc.JobName, props.Text{Top: 1, Size: 10})
			})
		})
	}

	headers := []string{"Date", "Task", "Notes", "Hours", "Rate", "Amount"}
	contents := make([][]string, 0, len(doc.Items)+1)
	for _, li := range doc.Items {
		contents = append(contents, []string{
			FormatDate(time.UnixMilli(li.Date)),
			li.Task,
			itemNotes(li),
			fmt.Sprintf("%.2f", li.Hours),
			FormatCurrency(li.Rate),
			FormatCurrency(li.Amount),
		})
	}
	contents = append(contents, []string{
		"", "", "TOTAL",
		fmt.Sprintf("%.2f", doc.TotalHours),
		"",
		FormatCurrency(doc.TotalAmount),
	})

	m.Row(6, func() {})
	m.TableList(headers, contents, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{2, 3, 3, 1, 1, 2},
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: []uint{2, 3, 3, 1, 1, 2},
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 243, Green: 244, Blue: 246},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write invoice PDF: %w", err)
	}
	return nil
}
