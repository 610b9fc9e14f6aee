package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/filteropts"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/urlstate"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "List records of an entity",
		Long: `List the records of an entity as a filtered, sorted, paged table.

Entities: accommodation-logs (logs), bed-night-report (report), properties,
portfolios, consultants, agencies, countries, booking-channels.`,
		Example: `  bednights list logs --filter country="Kenya|Tanzania" --sort date_in --desc
  bednights list properties -q camp --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().IntP("page", "p", 1, "Page number")
	cmd.Flags().Int("per-page", 0, "Records per page (default: the page's own size)")
	cmd.Flags().Bool("options", false, "Show the dropdown options for the current selection")
	cmd.Flags().Bool("json", false, "Print the filtered records as JSON")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	state, err := a.openPage(ctx, cmd.ErrOrStderr(), args[0])
	if err != nil {
		return err
	}
	if err := applyFilterFlags(cmd, cmd.ErrOrStderr(), state); err != nil {
		return err
	}

	table := state.Table()
	if n, _ := cmd.Flags().GetInt("per-page"); n > 0 {
		table.SetPerPage(n)
	}
	page, _ := cmd.Flags().GetInt("page")
	table.SetPage(page - 1)

	view := table.View()
	if page-1 != view.Page.Current {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo(fmt.Sprintf("Page %d does not exist; showing page 1", page)))
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view.Page.Records)
	}

	fmt.Fprintln(out, cli.FormatTitle(state.Page.Title()))
	if desc := describeSelection(state.Filters(), state.FilterKeys()); desc != "" {
		fmt.Fprintln(out, cli.SubtitleStyle.Render(desc))
	}
	fmt.Fprintln(out, cli.RenderPage(state.Page, view, table.Sort()))

	if showOptions, _ := cmd.Flags().GetBool("options"); showOptions {
		printOptions(cmd, state.Dropdowns(), state.Options())
	}
	return nil
}

func describeSelection(fs listview.FilterSet, keys []string) string {
	q := urlstate.Encode(fs, keys)
	if q == "" {
		return ""
	}
	return "Filters: " + q
}

func printOptions(cmd *cobra.Command, fields []filteropts.Field, options map[string][]filteropts.Option) {
	out := cmd.OutOrStdout()
	if len(fields) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("This page has no dropdown filters."))
		return
	}
	for _, f := range fields {
		labels := filteropts.Labels(options[f.Key])
		if len(labels) == 0 {
			labels = []string{"(none)"}
		}
		fmt.Fprintf(out, "%s %s\n", cli.BoldStyle.Render(f.Key+":"), strings.Join(labels, ", "))
	}
}
