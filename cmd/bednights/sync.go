package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/service"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local snapshots of every entity",
		Long: `Fetch every entity and store it as the local snapshot used when the API is
unreachable. Requires cache.snapshot_path.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	cmd.Flags().Bool("list", false, "List stored snapshots instead of fetching")
	cmd.Flags().Bool("clear", false, "Delete every stored snapshot")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return fmt.Errorf("snapshots need cache.snapshot_path to be set")
	}

	if reset, _ := cmd.Flags().GetBool("clear"); reset {
		if err := a.store.DeleteSnapshots(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Snapshots cleared"))
		return nil
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		infos, err := a.store.ListSnapshots(ctx)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintln(out, cli.SubtleStyle.Render("No snapshots stored."))
		}
		for _, info := range infos {
			fmt.Fprintf(out, "%-22s %6d records  %s\n", info.Entity, info.Count, info.FetchedAt.Local().Format(time.DateTime))
		}
		return nil
	}

	bar := cli.NewProgressBar(out, len(model.Entities), "Syncing...")
	results := a.loader.LoadAll(ctx, model.Entities, func(r service.LoadResult) {
		cli.Step(bar, r.Entity.Title())
	})

	var failed []string
	for _, r := range results {
		if r.Degraded() {
			failed = append(failed, r.Entity.Title())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("could not refresh %s", strings.Join(failed, ", "))
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Synced %d entities", len(results))))
	return nil
}
