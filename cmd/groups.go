package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List groups visible to the token",
	Long: `Lists the ID and name of every group the token can see. Use a group ID
with --group to scope an export to that group's organizations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		groups, err := client.GetGroups(cmd.Context())
		if err != nil {
			return err
		}

		for _, group := range groups {
			fmt.Printf("%s\t%s\n", group.ID, group.Name)
		}
		fmt.Printf("\n%d groups\n", len(groups))

		return nil
	},
}
