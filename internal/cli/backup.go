package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import the full state",
	Long: `Write the entire state to a JSON file, or replace it from one.

Import validates the file before touching anything; a bad file leaves
the current state untouched.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the full state to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("shophours-backup-%s.json", time.Now().Format("2006-01-02"))
		if len(args) > 0 {
			path = args[0]
		}

		data, err := appInstance.Store.Export()
		if err != nil {
			return fmt.Errorf("failed to export state: %w", err)
		}

		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Printf("✓ State exported to %s\n", path)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the state from a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will REPLACE all current data with the backup. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if err := appInstance.Store.Import(data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("✓ State imported from %s\n", args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
