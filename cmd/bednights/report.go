package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize bed nights by country, portfolio, property and month",
		Long: `Aggregate the bed-night report for the selected date window and dropdown
filters. Internal travel is always excluded.

The printed query string restores the same date window with --query.`,
		Example: `  bednights report --start-date 2024-01-01 --end-date 2024-06-30
  bednights report --query "start_date=2024-01-01&end_date=2024-06-30" -f agency="No agency"`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	addFilterFlags(cmd)
	cmd.Flags().Int("top", 10, "Rows per group series (0 for all)")
	cmd.Flags().Bool("options", false, "Show the dropdown options for the current selection")
	cmd.Flags().Bool("json", false, "Print the report as JSON")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.openPage(ctx, cmd.ErrOrStderr(), string(model.EntityBedNightReport))
	if err != nil {
		return err
	}
	if err := applyFilterFlags(cmd, cmd.ErrOrStderr(), state); err != nil {
		return err
	}

	r := state.Report()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	top, _ := cmd.Flags().GetInt("top")
	fmt.Fprintln(out, cli.FormatTitle(state.Page.Title()))
	if q := state.Query(); q != "" {
		fmt.Fprintln(out, cli.SubtitleStyle.Render("Query: ?"+q))
	}
	fmt.Fprintln(out, cli.RenderReport(r, top))

	if showOptions, _ := cmd.Flags().GetBool("options"); showOptions {
		printOptions(cmd, state.Dropdowns(), state.Options())
	}
	return nil
}
