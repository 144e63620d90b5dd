package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/export"
	"github.com/cole/shophours/internal/service"
	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Generate and manage invoices",
	Long: `Generate invoices from uninvoiced work, list past invoices, and export
them to CSV, HTML or PDF.`,
}

var invoiceGenerateCmd = &cobra.Command{
	Use:   "generate [client_id_or_name]",
	Short: "Generate an invoice for a client and date range",
	Long: `Build an invoice draft from uninvoiced completed time and charges in
the date range, then finalize it. Finalizing marks the covered records
as invoiced and appends an immutable snapshot to history.

Use --deselect to leave specific line items for a later invoice, and
--dry-run to preview the draft without committing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, args[0])
		if err != nil {
			return err
		}

		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		start, err := parseDate(fromStr)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		end, err := parseDate(toStr)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}

		scope := domain.ScopeClient()
		if jobArg, _ := cmd.Flags().GetString("job"); jobArg != "" {
			job, err := resolveJob(ctx, jobArg)
			if err != nil {
				return err
			}
			scope = domain.ScopeJob(job.ID)
		}

		draft, err := appInstance.InvoiceService.GenerateDraft(ctx, service.DraftParams{
			ClientID: client.ID,
			Start:    start,
			End:      end,
			Scope:    scope,
		})
		if err != nil {
			return fmt.Errorf("failed to generate draft: %w", err)
		}

		if deselect, _ := cmd.Flags().GetString("deselect"); deselect != "" {
			for _, id := range strings.Split(deselect, ",") {
				id = strings.TrimSpace(id)
				if id == "" {
					continue
				}
				full, err := resolveLineItem(draft, id)
				if err != nil {
					return err
				}
				draft.Toggle(full)
			}
		}

		printDraft(draft)

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			fmt.Println("\nDry run: nothing was invoiced")
			return nil
		}

		closeJob, _ := cmd.Flags().GetBool("close-job")
		invoice, err := appInstance.InvoiceService.Finalize(ctx, draft, closeJob)
		if err != nil {
			return fmt.Errorf("failed to finalize invoice: %w", err)
		}

		fmt.Printf("\n✓ Invoice %s finalized: %s\n", invoice.InvoiceNumber, currency(invoice.Total))
		if closeJob && invoice.JobName != "" {
			fmt.Printf("✓ Job closed: %s\n", invoice.JobName)
		}

		for _, format := range []string{"csv", "html", "pdf"} {
			if on, _ := cmd.Flags().GetBool(format); on {
				path, err := exportInvoice(invoice, format, "")
				if err != nil {
					return err
				}
				fmt.Printf("✓ Exported %s\n", path)
			}
		}
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past invoices, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices, err := appInstance.InvoiceService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-18s %-20s %-20s %-23s %-8s %-12s\n",
			"Number", "Client", "Job", "Period", "Hours", "Total")
		fmt.Println("-------------------------------------------------------------------------------------------------------")
		for i := range invoices {
			inv := &invoices[i]
			period := fmt.Sprintf("%s - %s",
				inv.DateRange.StartTime().Format("2006-01-02"),
				inv.DateRange.EndTime().Format("2006-01-02"),
			)
			fmt.Printf("%-18s %-20s %-20s %-23s %-8.2f %-12s\n",
				truncate(inv.InvoiceNumber, 18),
				truncate(inv.ClientName, 20),
				truncate(inv.JobName, 20),
				period,
				inv.TotalHours(),
				currency(inv.Total),
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show [id_or_number]",
	Short: "Show an invoice snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceService.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		fmt.Printf("Invoice %s\n", invoice.InvoiceNumber)
		fmt.Printf("  Client: %s\n", invoice.ClientName)
		if invoice.ClientContact != "" {
			fmt.Printf("  Contact: %s\n", invoice.ClientContact)
		}
		if invoice.JobName != "" {
			fmt.Printf("  Job: %s\n", invoice.JobName)
		}
		fmt.Printf("  Period: %s to %s\n",
			export.FormatDate(invoice.DateRange.StartTime()),
			export.FormatDate(invoice.DateRange.EndTime()))
		fmt.Printf("  Generated: %s\n", export.FormatDate(invoice.GeneratedTime()))
		fmt.Println()

		printLineItems(invoice.LineItems, nil)

		fmt.Printf("\n  Hours: %.2f\n", invoice.TotalHours())
		fmt.Printf("  Total: %s\n", currency(invoice.Total))
		return nil
	},
}

var invoiceExportCmd = &cobra.Command{
	Use:   "export [id_or_number]",
	Short: "Export an invoice to CSV, HTML or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceService.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		path, err := exportInvoice(invoice, format, out)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Exported %s\n", path)
		return nil
	},
}

// exportInvoice writes the invoice in the given format, defaulting the
// output path to the configured invoice directory
func exportInvoice(invoice *domain.Invoice, format, out string) (string, error) {
	doc := export.FromInvoice(invoice, appInstance.Config.Business.Name)

	if out == "" {
		base := export.CSVFilename(doc)
		base = strings.TrimSuffix(base, ".csv") + "." + format
		out = filepath.Join(appInstance.Config.Invoice.OutputDir, base)
	}

	switch format {
	case "pdf":
		if err := export.WritePDF(out, doc); err != nil {
			return "", fmt.Errorf("failed to write PDF: %w", err)
		}
		return out, nil
	case "csv", "html":
		f, err := os.Create(out)
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		if format == "csv" {
			err = export.WriteCSV(f, doc)
		} else {
			err = export.WriteHTML(f, doc)
		}
		if err != nil {
			return "", fmt.Errorf("failed to write %s: %w", format, err)
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected csv, html or pdf)", format)
	}
}

// resolveLineItem matches a full or shortened line item ID against the
// draft, as printed by the draft table
func resolveLineItem(draft *service.InvoiceDraft, id string) (string, error) {
	var match string
	for _, li := range draft.LineItems {
		if li.ID == id {
			return li.ID, nil
		}
		if strings.HasPrefix(li.ID, id) {
			if match != "" {
				return "", fmt.Errorf("line item %q is ambiguous", id)
			}
			match = li.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("line item %q not found in draft", id)
	}
	return match, nil
}

// printDraft renders the draft with selection markers
func printDraft(draft *service.InvoiceDraft) {
	fmt.Printf("Draft %s for %s\n", draft.InvoiceNumber, draft.Client.Name)
	if draft.JobName != "" {
		fmt.Printf("  Job: %s\n", draft.JobName)
	}
	fmt.Printf("  Period: %s to %s\n",
		export.FormatDate(draft.Range.StartTime()),
		export.FormatDate(draft.Range.EndTime()))
	fmt.Println()

	printLineItems(draft.LineItems, draft.IsSelected)

	fmt.Printf("\n  Selected: %.2f hours, %s\n", draft.SelectedHours(), currency(draft.SelectedAmount()))
}

// printLineItems renders line-item rows; selected may be nil when every
// row is included
func printLineItems(items []domain.LineItem, selected func(string) bool) {
	fmt.Printf("  %-3s %-10s %-12s %-25s %-8s %-10s %-12s\n",
		"", "ID", "Date", "Task", "Hours", "Rate", "Amount")
	for _, li := range items {
		mark := ""
		if selected != nil {
			mark = "[x]"
			if !selected(li.ID) {
				mark = "[ ]"
			}
		}
		hours := ""
		if !li.IsCharge() {
			hours = fmt.Sprintf("%.2f", li.Hours)
		}
		task := li.Task
		if li.IsCharge() {
			task = fmt.Sprintf("%s (%s)", li.Task, li.ChargeType)
		}
		fmt.Printf("  %-3s %-10s %-12s %-25s %-8s %-10s %-12s\n",
			mark,
			shortID(li.ID),
			time.UnixMilli(li.Date).Format("2006-01-02"),
			truncate(task, 25),
			hours,
			currency(li.Rate),
			currency(li.Amount),
		)
	}
}

func init() {
	invoiceCmd.AddCommand(invoiceGenerateCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceExportCmd)

	invoiceGenerateCmd.Flags().String("from", "", "Start of the billing period (YYYY-MM-DD)")
	invoiceGenerateCmd.Flags().String("to", "", "End of the billing period (YYYY-MM-DD)")
	invoiceGenerateCmd.MarkFlagRequired("from")
	invoiceGenerateCmd.MarkFlagRequired("to")
	invoiceGenerateCmd.Flags().String("job", "", "Restrict the invoice to one open job")
	invoiceGenerateCmd.Flags().String("deselect", "", "Comma-separated line item IDs to leave out")
	invoiceGenerateCmd.Flags().Bool("dry-run", false, "Preview the draft without finalizing")
	invoiceGenerateCmd.Flags().Bool("close-job", false, "Close the job after invoicing (job scope only)")
	invoiceGenerateCmd.Flags().Bool("csv", false, "Export the finalized invoice as CSV")
	invoiceGenerateCmd.Flags().Bool("html", false, "Export the finalized invoice as HTML")
	invoiceGenerateCmd.Flags().Bool("pdf", false, "Export the finalized invoice as PDF")

	invoiceExportCmd.Flags().String("format", "csv", "Export format: csv, html or pdf")
	invoiceExportCmd.Flags().String("out", "", "Output file (defaults into the invoice directory)")
}
