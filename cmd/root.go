// Package cmd defines the CLI surface of snyk-ignores.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/snykops/snyk-ignores/internal/config"
	"github.com/snykops/snyk-ignores/internal/snyk"
)

// Version is the CLI version reported by the version command.
const Version = "1.0.0"

var (
	groupID   string
	delay     time.Duration
	pageLimit int
)

var rootCmd = &cobra.Command{
	Use:   "snyk-ignores",
	Short: "Export vulnerability ignore rules from a Snyk account",
	Long: `snyk-ignores walks every organization and project visible to a Snyk API
token, collects the stored vulnerability ignore rules, and flattens them
into one record per ignored issue for CSV or JSON export.

Authentication uses the SNYK_TOKEN environment variable.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with the given context so that
// an interrupt cancels in-flight API calls.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Persistent flags shared by all commands
	rootCmd.PersistentFlags().StringVarP(&groupID, "group", "g", "", "Group ID to scope organization discovery")
	rootCmd.PersistentFlags().DurationVar(&delay, "delay", config.DefaultDelay, "Pause between per-project ignore fetches")
	rootCmd.PersistentFlags().IntVar(&pageLimit, "limit", config.DefaultPageLimit, "Page size for paginated API calls")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newClient builds a Snyk client from the environment, applying flag
// overrides, and returns the effective configuration alongside it.
func newClient() (*snyk.Client, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if groupID != "" {
		cfg.Snyk.GroupID = groupID
	}
	cfg.Snyk.Delay = delay
	cfg.Snyk.PageLimit = pageLimit

	client, err := snyk.NewClient(&cfg.Snyk)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize snyk client: %w", err)
	}

	return client, cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("snyk-ignores version %s\n", Version)
	},
}
