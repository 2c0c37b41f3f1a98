package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snykops/snyk-ignores/internal/logging"
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List organizations visible to the token",
	Long: `Lists the ID and name of every organization the token can see,
optionally scoped to a single group with --group. Useful for checking
why an organization is missing from an export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		orgs, err := client.GetOrganizations(cmd.Context(), cfg.Snyk.GroupID)
		if err != nil {
			if len(orgs) == 0 {
				return err
			}
			// Partial page failures still yield a usable listing.
			logging.Warn("organization listing is incomplete", "error", err)
		}

		for _, org := range orgs {
			fmt.Printf("%s\t%s\n", org.ID, org.Name)
		}
		fmt.Printf("\n%d organizations\n", len(orgs))

		return nil
	},
}
