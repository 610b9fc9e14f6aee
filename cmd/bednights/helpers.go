package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/bednights/internal/api"
	"github.com/Veraticus/bednights/internal/cli"
	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/config"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/listview"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/service"
	"github.com/Veraticus/bednights/internal/storage"
)

// app bundles the services a command needs.
type app struct {
	cfg     config.Config
	client  *api.Client
	store   *storage.SQLiteStorage
	loader  *service.Loader
	mutator *service.Mutator
}

// newApp loads configuration and opens the API client and, when configured,
// the snapshot store.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", err)
	}

	client, err := api.New(api.Config{
		BaseURL:       cfg.API.BaseURL,
		UserAgent:     "bednights/" + version,
		Timeout:       cfg.API.Timeout,
		RetryAttempts: cfg.API.RetryAttempts,
		RetryDelay:    cfg.API.RetryDelay,
		CacheTTL:      cfg.Cache.TTL,
		CacheSize:     cfg.Cache.Size,
	}, cfg.Session())
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	a := &app{cfg: cfg, client: client}

	var snapshots service.SnapshotStore
	var journal service.MutationJournal
	if cfg.Cache.SnapshotPath != "" {
		store, err := initStorage(ctx, cfg.Cache.SnapshotPath)
		if err != nil {
			client.Close()
			return nil, err
		}
		a.store = store
		snapshots = store
		journal = store
	}

	a.loader = service.NewLoader(client, snapshots)
	a.mutator = service.NewMutator(client, journal, cfg.Session().Email)
	return a, nil
}

// initStorage opens the snapshot database and runs migrations.
func initStorage(ctx context.Context, path string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

func (a *app) Close() {
	a.client.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}
}

func (a *app) bounds() forms.Bounds {
	b := forms.DefaultBounds(time.Now())
	b.Min, b.Max = a.cfg.DateBounds(b.Min, b.Max)
	return b
}

// openPage resolves an entity name and loads its records into a page state.
func (a *app) openPage(ctx context.Context, w io.Writer, name string) (*service.PageState, error) {
	entity, err := model.ParseEntity(name)
	if err != nil {
		return nil, err
	}
	page, err := pages.For(entity)
	if err != nil {
		return nil, err
	}
	state, err := service.NewPageState(page, a.cfg.Language(), a.bounds())
	if err != nil {
		return nil, err
	}

	result := a.loader.Load(ctx, entity)
	printNotices(w, state.Load(result))
	printLoadStatus(w, result)
	return state, nil
}

func printLoadStatus(w io.Writer, r service.LoadResult) {
	switch {
	case r.Stale:
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("API unavailable; showing %s from %s",
			strings.ToLower(r.Entity.Title()), r.FetchedAt.Local().Format(time.DateTime))))
	case r.Degraded():
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Could not load %s: %v", strings.ToLower(r.Entity.Title()), r.Err)))
	}
}

func printNotices(w io.Writer, notices []forms.Notice) {
	for _, n := range notices {
		fmt.Fprintln(w, cli.FormatInfo(string(n)))
	}
}

// addFilterFlags registers the filter flags shared by list, report and export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "q", "", "Free-text search")
	cmd.Flags().StringArrayP("filter", "f", nil, "Filter as key=value, with | between values (repeatable)")
	cmd.Flags().String("query", "", "Filter selection as a query string, e.g. country=Kenya|Tanzania&start_date=2024-01-01")
	cmd.Flags().String("start-date", "", "Only stays overlapping this date or later (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "Only stays overlapping this date or earlier (YYYY-MM-DD)")
	cmd.Flags().String("sort", "", "Sort by field")
	cmd.Flags().Bool("desc", false, "Sort descending")
}

// applyFilterFlags applies the shared filter flags to state.
func applyFilterFlags(cmd *cobra.Command, w io.Writer, state *service.PageState) error {
	if raw, _ := cmd.Flags().GetString("query"); raw != "" {
		notices, err := state.ApplyQuery(raw, state.FilterKeys())
		if err != nil {
			return err
		}
		printNotices(w, notices)
	}

	fs := state.Filters()
	if q, _ := cmd.Flags().GetString("search"); q != "" {
		fs[pages.KeySearch] = []string{q}
	}
	if s, _ := cmd.Flags().GetString("start-date"); s != "" {
		fs[pages.KeyStartDate] = []string{s}
	}
	if s, _ := cmd.Flags().GetString("end-date"); s != "" {
		fs[pages.KeyEndDate] = []string{s}
	}
	filters, _ := cmd.Flags().GetStringArray("filter")
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("filter %q must look like key=value", f)
		}
		fs[strings.TrimSpace(key)] = strings.Split(value, "|")
	}
	printNotices(w, state.SetFilters(fs))

	if field, _ := cmd.Flags().GetString("sort"); field != "" {
		desc, _ := cmd.Flags().GetBool("desc")
		state.Table().SetSort(listview.SortSpec{Field: field, Ascending: !desc})
	}
	return nil
}
