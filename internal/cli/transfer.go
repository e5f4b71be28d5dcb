package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfreund/ipam-console/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the full IP inventory as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := inventory.ExportAll(cmd.Context())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Upload a CSV of IP records",
	Long:  "Uploads a CSV with an ip_address column. Rows update existing records or create new ones; per-row failures are reported without aborting the rest of the file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		return inventory.ImportFrom(cmd.Context(), filepath.Base(args[0]), data)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", transfer.Filename, "output file, - for stdout")

	rootCmd.AddCommand(exportCmd, importCmd)
}
