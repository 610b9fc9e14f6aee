package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/tui"
	"github.com/Veraticus/bednights/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Browse, edit and report interactively",
		Long: `Open the interactive dashboard: one tab per entity plus the bed-night report.

Tabs load on first visit. Use / to search, f and [ ] to pick dropdown values,
1-9 to sort by a column and ? for every key. Admin sessions can create (n),
edit (e) and delete (d) records.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			// Log lines on stderr would tear the alternate screen.
			if a.cfg.Logging.File == "" {
				slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
			}

			opts := []tui.Option{
				tui.WithLoader(a.loader),
				tui.WithMutator(a.mutator),
				tui.WithSession(a.cfg.Session()),
				tui.WithLanguage(a.cfg.Language()),
				tui.WithBounds(a.bounds()),
				tui.WithTheme(themes.GetTheme(a.cfg.UI.Theme)),
				tui.WithLayout(a.cfg.UI.NarrowWidth, a.cfg.UI.PageWindow),
			}
			if only, _ := cmd.Flags().GetStringSlice("tab"); len(only) > 0 {
				tabs, err := dashboardPages(only)
				if err != nil {
					return err
				}
				opts = append(opts, tui.WithPages(tabs...))
			}

			if err := tui.Run(ctx, opts...); err != nil {
				return common.NewUserError("Dashboard stopped", err)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("tab", nil, "Only show these entities, in order (e.g. --tab countries,bed-night-report)")
	return cmd
}

// dashboardPages resolves entity names into pages, keeping the given order and
// dropping repeats.
func dashboardPages(names []string) ([]pages.Page, error) {
	seen := make(map[model.Entity]bool, len(names))
	out := make([]pages.Page, 0, len(names))
	for _, name := range names {
		entity, err := model.ParseEntity(name)
		if err != nil {
			return nil, err
		}
		if seen[entity] {
			continue
		}
		seen[entity] = true
		page, err := pages.For(entity)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, nil
}
