package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mfreund/ipam-console/internal/domain"
)

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Manage IP records",
}

var ipListCmd = &cobra.Command{
	Use:   "list SUBNET_ID",
	Short: "List the IPs of a subnet and its descendants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid subnet id %q", args[0])
		}

		if err := inventory.RefreshSubnets(cmd.Context()); err != nil {
			return err
		}
		if err := inventory.SelectSubnet(cmd.Context(), id); err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		inventory.SetSearchTerm(search)

		for _, rec := range inventory.VisibleIPs() {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.IPAddress, rec.DNSName, rec.Architecture, rec.Function, rec.SubnetName)
		}
		return nil
	},
}

var ipAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an IP record under a subnet",
	Long:  "Adds an IP record. The server assigns it to the narrowest subnet at or below --subnet that contains the address.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		subnetID, err := cmd.Flags().GetInt64("subnet")
		if err != nil {
			return err
		}
		address, _ := cmd.Flags().GetString("ip")
		dns, _ := cmd.Flags().GetString("dns")
		arch, _ := cmd.Flags().GetString("arch")
		function, _ := cmd.Flags().GetString("function")

		return inventory.CreateIP(cmd.Context(), subnetID, domain.CreateIPInput{
			IPAddress:    address,
			DNSName:      dns,
			Architecture: arch,
			Function:     function,
		})
	},
}

var ipUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update an IP record's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := domain.UpdateIPInput{
			DNSName:      changedString(cmd, "dns"),
			Architecture: changedString(cmd, "arch"),
			Function:     changedString(cmd, "function"),
		}
		if patch.DNSName == nil && patch.Architecture == nil && patch.Function == nil {
			return fmt.Errorf("nothing to update, pass --dns, --arch or --function")
		}

		return inventory.UpdateIP(cmd.Context(), domain.IPRecordID(args[0]), patch)
	},
}

var ipDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an IP record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inventory.RequestDeleteIP(domain.IPRecordID(args[0]), args[0])
		yes, _ := cmd.Flags().GetBool("yes")
		if !confirmPending(cmd, yes) {
			inventory.CancelDelete()
			return nil
		}
		return inventory.ConfirmDelete(cmd.Context())
	},
}

func init() {
	ipListCmd.Flags().String("search", "", "case-insensitive substring filter across address, dns, architecture, function and subnet fields")

	ipAddCmd.Flags().Int64("subnet", 0, "subnet id to register the address under")
	ipAddCmd.Flags().String("ip", "", "the address")
	ipAddCmd.Flags().String("dns", "", "dns name")
	ipAddCmd.Flags().String("arch", "", "architecture category")
	ipAddCmd.Flags().String("function", "", "free-text role")
	_ = ipAddCmd.MarkFlagRequired("subnet")
	_ = ipAddCmd.MarkFlagRequired("ip")

	ipUpdateCmd.Flags().String("dns", "", "new dns name")
	ipUpdateCmd.Flags().String("arch", "", "new architecture category")
	ipUpdateCmd.Flags().String("function", "", "new role")

	ipDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	ipCmd.AddCommand(ipListCmd, ipAddCmd, ipUpdateCmd, ipDeleteCmd)
	rootCmd.AddCommand(ipCmd)
}
