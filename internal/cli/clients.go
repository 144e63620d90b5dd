package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and remove clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		fmt.Printf("%-10s %-30s %-25s %-10s\n", "ID", "Name", "Contact", "Rate")
		fmt.Println("------------------------------------------------------------------------------")
		for _, client := range clients {
			fmt.Printf("%-10s %-30s %-25s $%-9.2f\n",
				shortID(client.ID),
				truncate(client.Name, 30),
				truncate(client.Contact, 25),
				client.Rate,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rate, _ := cmd.Flags().GetFloat64("rate")
		contact, _ := cmd.Flags().GetString("contact")

		client, err := appInstance.ClientService.Add(ctx, args[0], contact, rate)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %s)\n", client.Name, shortID(client.ID))
		fmt.Printf("  Hourly Rate: $%.2f\n", client.Rate)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id_or_name]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			client.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("rate") {
			client.Rate, _ = cmd.Flags().GetFloat64("rate")
		}
		if cmd.Flags().Changed("contact") {
			client.Contact, _ = cmd.Flags().GetString("contact")
		}

		if err := appInstance.ClientService.Update(ctx, *client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:   "remove [id_or_name]",
	Short: "Remove a client and its time entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, args[0])
		if err != nil {
			return err
		}

		if err := appInstance.ClientService.Delete(ctx, client.ID); err != nil {
			return fmt.Errorf("failed to remove client: %w", err)
		}

		fmt.Printf("✓ Client removed: %s\n", client.Name)
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsRemoveCmd)

	clientsAddCmd.Flags().Float64("rate", 0, "Hourly rate (required)")
	clientsAddCmd.MarkFlagRequired("rate")
	clientsAddCmd.Flags().String("contact", "", "Contact info (email or phone)")

	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().Float64("rate", 0, "New hourly rate")
	clientsEditCmd.Flags().String("contact", "", "New contact info")
}
