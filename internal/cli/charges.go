package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/service"
	"github.com/spf13/cobra"
)

var chargesCmd = &cobra.Command{
	Use:   "charges",
	Short: "Manage parts and expenses on jobs",
	Long:  `Add, edit, remove, list, and bulk-import charges attached to jobs.`,
}

var chargesAddCmd = &cobra.Command{
	Use:   "add [job_id_or_name] [description]",
	Short: "Add a part or expense to a job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job, err := resolveJob(ctx, args[0])
		if err != nil {
			return err
		}

		kind, _ := cmd.Flags().GetString("kind")
		qty, _ := cmd.Flags().GetFloat64("qty")
		cost, _ := cmd.Flags().GetFloat64("cost")
		price, _ := cmd.Flags().GetFloat64("price")
		category, _ := cmd.Flags().GetString("category")
		clientArg, _ := cmd.Flags().GetString("client")

		clientID := ""
		if clientArg != "" {
			client, err := resolveClient(ctx, clientArg)
			if err != nil {
				return err
			}
			clientID = client.ID
		}

		charge, err := appInstance.ChargeService.Add(ctx, job.ID, service.ChargeParams{
			ClientID:    clientID,
			Kind:        domain.ChargeKind(kind),
			Description: args[1],
			Quantity:    qty,
			UnitCost:    cost,
			UnitPrice:   price,
			Category:    category,
		})
		if err != nil {
			return fmt.Errorf("failed to add charge: %w", err)
		}

		fmt.Printf("✓ %s added to %s: %s\n", charge.Kind, job.Name, charge.Description)
		fmt.Printf("  %.2f x %s = %s\n", charge.Quantity, currency(charge.UnitPrice), currency(charge.AmountCached))
		return nil
	},
}

var chargesEditCmd = &cobra.Command{
	Use:   "edit [charge_id]",
	Short: "Edit a charge",
	Long:  `Edit a charge. Amounts are recalculated; invoiced charges cannot be edited.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		existing, err := appInstance.ChargeService.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get charge: %w", err)
		}

		p := service.ChargeParams{
			ClientID:    existing.ClientID,
			Kind:        existing.Kind,
			Description: existing.Description,
			Quantity:    existing.Quantity,
			UnitCost:    existing.UnitCost,
			UnitPrice:   existing.UnitPrice,
			Category:    existing.Category,
		}
		if cmd.Flags().Changed("kind") {
			kind, _ := cmd.Flags().GetString("kind")
			p.Kind = domain.ChargeKind(kind)
		}
		if cmd.Flags().Changed("description") {
			p.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("qty") {
			p.Quantity, _ = cmd.Flags().GetFloat64("qty")
		}
		if cmd.Flags().Changed("cost") {
			p.UnitCost, _ = cmd.Flags().GetFloat64("cost")
		}
		if cmd.Flags().Changed("price") {
			p.UnitPrice, _ = cmd.Flags().GetFloat64("price")
		}
		if cmd.Flags().Changed("category") {
			p.Category, _ = cmd.Flags().GetString("category")
		}

		charge, err := appInstance.ChargeService.Edit(ctx, args[0], p)
		if err != nil {
			return fmt.Errorf("failed to edit charge: %w", err)
		}

		fmt.Printf("✓ Charge updated: %s\n", charge.Description)
		fmt.Printf("  %.2f x %s = %s\n", charge.Quantity, currency(charge.UnitPrice), currency(charge.AmountCached))
		return nil
	},
}

var chargesRemoveCmd = &cobra.Command{
	Use:   "remove [charge_id]",
	Short: "Remove a charge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.ChargeService.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove charge: %w", err)
		}

		fmt.Println("✓ Charge removed")
		return nil
	},
}

var chargesListCmd = &cobra.Command{
	Use:   "list [job_id_or_name]",
	Short: "List charges on a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job, err := resolveJob(ctx, args[0])
		if err != nil {
			return err
		}

		charges, err := appInstance.ChargeService.ListForJob(ctx, job.ID)
		if err != nil {
			return fmt.Errorf("failed to list charges: %w", err)
		}

		if len(charges) == 0 {
			fmt.Printf("No charges on %s\n", job.Name)
			return nil
		}

		fmt.Printf("%-10s %-8s %-30s %-8s %-10s %-12s %-4s\n",
			"ID", "Kind", "Description", "Qty", "Price", "Amount", "Inv")
		fmt.Println("---------------------------------------------------------------------------------------")
		total := 0.0
		for _, c := range charges {
			invoiced := ""
			if c.Invoiced {
				invoiced = "yes"
			}
			fmt.Printf("%-10s %-8s %-30s %-8.2f %-10s %-12s %-4s\n",
				shortID(c.ID),
				c.Kind,
				truncate(c.Description, 30),
				c.Quantity,
				currency(c.UnitPrice),
				currency(c.AmountCached),
				invoiced,
			)
			total += c.AmountCached
		}
		fmt.Printf("\nTotal: %s across %d charge(s)\n", currency(total), len(charges))
		return nil
	},
}

var chargesImportCmd = &cobra.Command{
	Use:   "import [job_id_or_name] [csv_file]",
	Short: "Bulk-import charges from a CSV file",
	Long: `Import charges from a CSV file with rows of the form:

  kind,description,quantity,unit_cost[,unit_price[,category]]

The whole file is validated first; a bad row imports nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job, err := resolveJob(ctx, args[0])
		if err != nil {
			return err
		}

		clientID := ""
		if clientArg, _ := cmd.Flags().GetString("client"); clientArg != "" {
			client, err := resolveClient(ctx, clientArg)
			if err != nil {
				return err
			}
			clientID = client.ID
		}

		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[1], err)
		}
		defer f.Close()

		n, err := appInstance.ChargeService.BulkImport(ctx, job.ID, clientID, f)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("✓ Imported %d charge(s) into %s\n", n, job.Name)
		return nil
	},
}

func init() {
	chargesCmd.AddCommand(chargesAddCmd)
	chargesCmd.AddCommand(chargesEditCmd)
	chargesCmd.AddCommand(chargesRemoveCmd)
	chargesCmd.AddCommand(chargesListCmd)
	chargesCmd.AddCommand(chargesImportCmd)

	chargesAddCmd.Flags().String("kind", "part", "Charge kind: part or expense")
	chargesAddCmd.Flags().Float64("qty", 1, "Quantity")
	chargesAddCmd.Flags().Float64("cost", 0, "Unit cost")
	chargesAddCmd.Flags().Float64("price", 0, "Unit price (defaults to unit cost)")
	chargesAddCmd.Flags().String("category", "", "Expense category")
	chargesAddCmd.Flags().String("client", "", "Client to bill (inferred from the job when omitted)")

	chargesEditCmd.Flags().String("kind", "", "New kind")
	chargesEditCmd.Flags().String("description", "", "New description")
	chargesEditCmd.Flags().Float64("qty", 0, "New quantity")
	chargesEditCmd.Flags().Float64("cost", 0, "New unit cost")
	chargesEditCmd.Flags().Float64("price", 0, "New unit price")
	chargesEditCmd.Flags().String("category", "", "New expense category")

	chargesImportCmd.Flags().String("client", "", "Client to bill (inferred from the job when omitted)")
}
