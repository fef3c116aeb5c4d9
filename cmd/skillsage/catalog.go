package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsage/internal/observability"
	"github.com/jonathan/skillsage/internal/types"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog [branch]",
	Short: "List branches and years, or the suggested skills for a branch",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var payload any
	if len(args) == 1 {
		branch := args[0]
		if !types.IsBranch(branch) {
			return fmt.Errorf("unknown branch %q", branch)
		}
		opts := types.OptionsForBranch(branch)
		if !catalogJSON {
			observability.NewPrinter(out).PrintBranchOptions(branch, opts)
			return nil
		}
		payload = opts
	} else {
		catalog := types.NewCatalogResponse()
		if !catalogJSON {
			observability.NewPrinter(out).PrintCatalog(catalog)
			return nil
		}
		payload = catalog
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
