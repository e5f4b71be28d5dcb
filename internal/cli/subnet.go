package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfreund/ipam-console/internal/domain"
)

var subnetCmd = &cobra.Command{
	Use:   "subnet",
	Short: "Manage subnets",
}

var subnetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all subnets flat",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := inventory.RefreshSubnets(cmd.Context()); err != nil {
			return err
		}
		for _, s := range inventory.Subnets() {
			parent := "-"
			if s.ParentID != nil {
				parent = strconv.FormatInt(*s.ParentID, 10)
			}
			fmt.Printf("%d\t%s\t%s\tparent=%s\t%s\n", s.ID, s.Name, s.CIDR, parent, s.Description)
		}
		return nil
	},
}

var subnetTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the subnet hierarchy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		collapsed, err := cmd.Flags().GetInt64Slice("collapse")
		if err != nil {
			return err
		}
		if err := inventory.RefreshSubnets(cmd.Context()); err != nil {
			return err
		}
		for _, id := range collapsed {
			inventory.ToggleCollapse(id)
		}
		for _, root := range inventory.Forest() {
			printTreeNode(root, 0)
		}
		return nil
	},
}

func printTreeNode(node *domain.SubnetTreeNode, depth int) {
	marker := ""
	if inventory.IsCollapsed(node.ID) && len(node.Children) > 0 {
		marker = " [+]"
	}
	fmt.Printf("%s%d %s %s%s\n", strings.Repeat("  ", depth), node.ID, node.Name, node.CIDR, marker)
	if inventory.IsCollapsed(node.ID) {
		return
	}
	for _, child := range node.Children {
		printTreeNode(child, depth+1)
	}
}

var subnetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a subnet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		cidr, _ := cmd.Flags().GetString("cidr")
		description, _ := cmd.Flags().GetString("description")

		if cidr == "" {
			cidr = prefs.DefaultCIDR
		}

		input := domain.CreateSubnetInput{Name: name, CIDR: cidr, Description: description}
		if cmd.Flags().Changed("parent") {
			parent, err := cmd.Flags().GetInt64("parent")
			if err != nil {
				return err
			}
			input.ParentID = &parent
		}

		return inventory.CreateSubnet(cmd.Context(), input)
	},
}

var subnetUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a subnet's name or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid subnet id %q", args[0])
		}

		patch := domain.UpdateSubnetInput{
			Name:        changedString(cmd, "name"),
			Description: changedString(cmd, "description"),
		}
		if patch.Name == nil && patch.Description == nil {
			return fmt.Errorf("nothing to update, pass --name or --description")
		}

		return inventory.UpdateSubnet(cmd.Context(), id, patch)
	},
}

var subnetDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a subnet, its children and all their IP records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid subnet id %q", args[0])
		}

		if err := inventory.RefreshSubnets(cmd.Context()); err != nil {
			return err
		}
		name := strconv.FormatInt(id, 10)
		for _, s := range inventory.Subnets() {
			if s.ID == id {
				name = s.Name
			}
		}

		inventory.RequestDeleteSubnet(id, name)
		yes, _ := cmd.Flags().GetBool("yes")
		if !confirmPending(cmd, yes) {
			inventory.CancelDelete()
			return nil
		}
		return inventory.ConfirmDelete(cmd.Context())
	},
}

func init() {
	subnetTreeCmd.Flags().Int64Slice("collapse", nil, "subnet ids to render collapsed")

	subnetCreateCmd.Flags().String("name", "", "subnet name")
	subnetCreateCmd.Flags().String("cidr", "", "subnet CIDR, falls back to the default_cidr preference")
	subnetCreateCmd.Flags().String("description", "", "free-text description")
	subnetCreateCmd.Flags().Int64("parent", 0, "parent subnet id")

	subnetUpdateCmd.Flags().String("name", "", "new name")
	subnetUpdateCmd.Flags().String("description", "", "new description")

	subnetDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	subnetCmd.AddCommand(subnetListCmd, subnetTreeCmd, subnetCreateCmd, subnetUpdateCmd, subnetDeleteCmd)
	rootCmd.AddCommand(subnetCmd)
}

// changedString returns a pointer only when the flag was set, so unset
// flags stay out of the patch.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

// confirmPending prompts for the pending delete unless yes was passed.
func confirmPending(cmd *cobra.Command, yes bool) bool {
	if yes {
		return true
	}
	pending := inventory.Pending()
	if pending == nil {
		return false
	}
	fmt.Printf("delete %s? [y/N] ", pending.DisplayName)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
