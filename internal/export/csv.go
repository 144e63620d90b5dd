package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteCSV renders the document as a line-item table with a trailing
// totals row
func WriteCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)

	rows := [][]string{{"Date", "Task", "Notes", "Hours", "Rate", "Amount"}}
	for _, li := range doc.Items {
		rows = append(rows, []string{
			FormatDate(time.UnixMilli(li.Date)),
			li.Task,
			itemNotes(li),
			fmt.Sprintf("%.2f", li.Hours),
			fmt.Sprintf("%.2f", li.Rate),
			fmt.Sprintf("%.2f", li.Amount),
		})
	}
	rows = append(rows, []string{
		"", "", "TOTAL",
		fmt.Sprintf("%.2f", doc.TotalHours),
		"",
		fmt.Sprintf("%.2f", doc.TotalAmount),
	})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// CSVFilename suggests a download name for the export
func CSVFilename(doc Document) string {
	return fmt.Sprintf("invoice-%s-%s-to-%s.csv",
		doc.ClientName,
		doc.PeriodStart.Format("2006-01-02"),
		doc.PeriodEnd.Format("2006-01-02"))
}
