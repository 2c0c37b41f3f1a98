package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/snykops/snyk-ignores/internal/export"
	"github.com/snykops/snyk-ignores/internal/ignores"
	"github.com/snykops/snyk-ignores/pkg/models"
)

var (
	csvPath  string
	jsonPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Collect and export every ignore rule visible to the token",
	Long: `Walks all organizations (optionally scoped to a group), fetches every
project's ignore rules, flattens them into one record per ignored issue,
and writes the result as CSV and/or JSON.

A fetch failure drops the affected organization or project and the
traversal continues; partial results are exported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		walker := ignores.NewWalker(client, cfg.Snyk.Delay)
		records, err := walker.ProcessAll(cmd.Context(), cfg.Snyk.GroupID)
		if err != nil {
			return err
		}

		printSummary(records)

		// Default to a timestamped CSV when no target was requested.
		if csvPath == "" && jsonPath == "" {
			csvPath = fmt.Sprintf("snyk_ignores_%d.csv", time.Now().Unix())
		}

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)

		var exportErr error

		if csvPath != "" {
			if err := export.ExportCSV(records, csvPath); err != nil {
				red.Printf("CSV export failed: %v\n", err)
				if !errors.Is(err, export.ErrNoRecords) {
					exportErr = err
				}
			} else {
				green.Printf("CSV results saved to %s\n", csvPath)
			}
		}

		if jsonPath != "" {
			if err := export.ExportJSON(records, jsonPath); err != nil {
				red.Printf("JSON export failed: %v\n", err)
				if !errors.Is(err, export.ErrNoRecords) {
					exportErr = err
				}
			} else {
				green.Printf("JSON results saved to %s\n", jsonPath)
			}
		}

		return exportErr
	},
}

func init() {
	exportCmd.Flags().StringVar(&csvPath, "csv", "", "CSV output file (default snyk_ignores_<timestamp>.csv)")
	exportCmd.Flags().StringVar(&jsonPath, "json", "", "JSON output file")
}

// printSummary reports what the traversal found.
func printSummary(records []models.IgnoreRecord) {
	cyan := color.New(color.FgCyan)

	orgs := map[string]struct{}{}
	projects := map[string]struct{}{}
	for _, r := range records {
		orgs[r.OrgID] = struct{}{}
		projects[r.OrgID+"/"+r.ProjectID] = struct{}{}
	}

	cyan.Println("\nSummary")
	fmt.Printf("  Ignore records:            %d\n", len(records))
	fmt.Printf("  Projects with ignores:     %d\n", len(projects))
	fmt.Printf("  Organizations with ignores: %d\n", len(orgs))
}
