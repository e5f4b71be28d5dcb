package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreund/ipam-console/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the stored preferences",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Printf("theme: %s\nlocale: %s\ndefault_cidr: %s\n", prefs.Theme, prefs.Locale, prefs.DefaultCIDR)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a preference (theme, locale, default_cidr)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		switch args[0] {
		case "theme":
			prefs.Theme = args[1]
		case "locale":
			prefs.Locale = args[1]
		case "default_cidr":
			prefs.DefaultCIDR = args[1]
		default:
			return fmt.Errorf("unknown preference %q", args[0])
		}

		if err := settings.Save(prefsPath, prefs); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
