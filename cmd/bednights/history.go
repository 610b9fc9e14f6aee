package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent creates, updates and deletes",
		Long:  `Show the local journal of mutations sent from this machine. Requires cache.snapshot_path.`,
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "Number of entries")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return fmt.Errorf("the mutation journal needs cache.snapshot_path to be set")
	}

	entries, err := a.store.RecentMutations(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No mutations recorded yet."))
		return nil
	}
	fmt.Fprintln(out, renderHistory(entries))
	return nil
}

func renderHistory(entries []storage.Mutation) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers("When", "Entity", "Action", "Record", "Outcome", "Actor").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableHeaderStyle
			}
			return cli.TableCellStyle
		})
	for _, m := range entries {
		t.Row(
			m.CreatedAt.Local().Format(time.DateTime),
			string(m.Entity),
			m.Action,
			m.RecordID,
			m.Outcome,
			m.Actor,
		)
	}
	return t.Render()
}
